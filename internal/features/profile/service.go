// Package profile — service.go отдаёт профиль и начальный баланс сессии наград.
package profile

import (
	"context"
	"fmt"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Source — откуда берутся профили.
// Реализации: StaticRepository (демо-данные) и Repository (PostgreSQL).
type Source interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

// Service — бизнес-логика профиля.
type Service struct {
	source Source
}

// NewService создаёт сервис профилей.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.source.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.ErrProfileNotFound
	}
	return p, nil
}

// InitialBalance — очки из профиля, с которых начинается сессия наград.
func (s *Service) InitialBalance(ctx context.Context, userID int64) (int64, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("профиль для баланса: %w", err)
	}
	return p.Points, nil
}
