// Package certificates — service.go строит сертификаты из часов по годам.
package certificates

import (
	"context"
	"time"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/profile"
)

// ProfileSource — откуда берутся часы по годам (profile.Service).
type ProfileSource interface {
	Profile(ctx context.Context, userID int64) (*profile.Profile, error)
}

// Service выдаёт сертификаты.
type Service struct {
	profiles ProfileSource
	loc      *time.Location
	now      func() time.Time
}

// NewService создаёт сервис сертификатов. Дата выдачи считается в APP_TIMEZONE.
func NewService(profiles ProfileSource, cfg *config.Config) *Service {
	return &Service{
		profiles: profiles,
		loc:      common.LoadLocation(cfg.AppTimezone),
		now:      time.Now,
	}
}

// Location — часовой пояс для дат сертификатов.
func (s *Service) Location() *time.Location {
	return s.loc
}

// List возвращает сертификаты за все годы профиля (новые первыми).
func (s *Service) List(ctx context.Context, userID int64) ([]Certificate, error) {
	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	issued := s.now().In(s.loc)
	out := make([]Certificate, 0, len(p.Yearly))
	for _, y := range p.Yearly {
		out = append(out, Certificate{Name: p.Name, Year: y.Year, Hours: y.Hours, IssuedOn: issued})
	}
	return out, nil
}

// Get возвращает сертификат за год.
// Нет часов за этот год — common.ErrCertificateNotFound.
func (s *Service) Get(ctx context.Context, userID int64, year int) (Certificate, error) {
	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return Certificate{}, err
	}
	hours, ok := p.HoursIn(year)
	if !ok {
		return Certificate{}, common.ErrCertificateNotFound
	}
	return Certificate{Name: p.Name, Year: year, Hours: hours, IssuedOn: s.now().In(s.loc)}, nil
}
