// Package opportunities — service.go ищет карточки.
package opportunities

import (
	"context"
	"fmt"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Source — откуда берутся карточки.
type Source interface {
	Opportunities(ctx context.Context) ([]Opportunity, error)
}

// Service — бизнес-логика возможностей.
type Service struct {
	source Source
}

// NewService создаёт сервис возможностей.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Search возвращает карточки, подходящие под запрос, в исходном порядке.
func (s *Service) Search(ctx context.Context, query string) ([]Opportunity, error) {
	all, err := s.source.Opportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки возможностей: %w", err)
	}
	out := make([]Opportunity, 0, len(all))
	for _, o := range all {
		if o.Matches(query) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get возвращает карточку по id.
func (s *Service) Get(ctx context.Context, id string) (Opportunity, error) {
	all, err := s.source.Opportunities(ctx)
	if err != nil {
		return Opportunity{}, fmt.Errorf("ошибка загрузки возможностей: %w", err)
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return Opportunity{}, common.ErrOpportunityNotFound
}
