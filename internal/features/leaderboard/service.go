// Package leaderboard — service.go ранжирует волонтёров.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
)

// podiumSize — мест на пьедестале.
const podiumSize = 3

// Source — откуда берутся волонтёры.
type Source interface {
	Volunteers(ctx context.Context) ([]Volunteer, error)
}

// Service строит таблицу лидеров.
type Service struct {
	source Source
}

// NewService создаёт сервис таблицы лидеров.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Board загружает волонтёров и ранжирует их.
func (s *Service) Board(ctx context.Context) (Board, error) {
	list, err := s.source.Volunteers(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("ошибка загрузки таблицы лидеров: %w", err)
	}
	return Rank(list), nil
}

// Rank сортирует по часам по убыванию (при равенстве по ID)
// и делит на пьедестал и остальных. Входной срез не меняется.
func Rank(list []Volunteer) Board {
	sorted := make([]Volunteer, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Hours != sorted[j].Hours {
			return sorted[i].Hours > sorted[j].Hours
		}
		return sorted[i].ID < sorted[j].ID
	})

	var b Board
	for i, v := range sorted {
		e := Entry{Rank: i + 1, Volunteer: v}
		if i < podiumSize {
			b.Podium = append(b.Podium, e)
		} else {
			b.Rest = append(b.Rest, e)
		}
	}
	return b
}
