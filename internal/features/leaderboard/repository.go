// Package leaderboard — repository.go читает таблицу leaderboard_volunteers.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository читает волонтёров из PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий таблицы лидеров.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Volunteers возвращает всех волонтёров таблицы (без сортировки по часам).
func (r *Repository) Volunteers(ctx context.Context) ([]Volunteer, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, hours FROM leaderboard_volunteers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения таблицы лидеров: %w", err)
	}
	defer rows.Close()

	var out []Volunteer
	for rows.Next() {
		var v Volunteer
		if err := rows.Scan(&v.ID, &v.Name, &v.Hours); err != nil {
			return nil, fmt.Errorf("ошибка сканирования волонтёра: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// StaticRepository отдаёт демо-таблицу.
type StaticRepository struct{}

// NewStaticRepository создаёт репозиторий с демо-таблицей.
func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

// Volunteers возвращает копию SampleVolunteers.
func (StaticRepository) Volunteers(ctx context.Context) ([]Volunteer, error) {
	out := make([]Volunteer, len(SampleVolunteers))
	copy(out, SampleVolunteers)
	return out, nil
}

// SampleVolunteers — демо-таблица приложения.
var SampleVolunteers = []Volunteer{
	{ID: 1, Name: "Rawbin", Hours: 156},
	{ID: 2, Name: "Waggy Rogers", Hours: 142},
	{ID: 3, Name: "Surgil Hawkins", Hours: 135},
	{ID: 4, Name: "Fake the dog", Hours: 128},
	{ID: 5, Name: "Sinn the Human", Hours: 120},
	{ID: 6, Name: "Jake the Cat", Hours: 115},
}
