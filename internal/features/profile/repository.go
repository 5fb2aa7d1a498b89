// Package profile — repository.go читает профили из volunteer_profiles
// и yearly_hours. Бот никогда не пишет в эти таблицы.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Repository читает профили из PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий профилей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Profile возвращает профиль по Telegram ID вместе с часами по годам.
func (r *Repository) Profile(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT telegram_id, name, volunteer_since, total_hours, events_attended,
		       current_streak, years_active, points
		FROM volunteer_profiles
		WHERE telegram_id = $1
	`
	var p Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.VolunteerSince, &p.TotalHours, &p.EventsAttended,
		&p.CurrentStreak, &p.YearsActive, &p.Points,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrProfileNotFound
		}
		return nil, fmt.Errorf("ошибка получения профиля (user_id=%d): %w", userID, err)
	}

	yearly, err := r.yearly(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Yearly = yearly
	return &p, nil
}

func (r *Repository) yearly(ctx context.Context, userID int64) ([]YearlyHours, error) {
	query := `
		SELECT year, hours
		FROM yearly_hours
		WHERE telegram_id = $1
		ORDER BY year DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения часов по годам: %w", err)
	}
	defer rows.Close()

	var out []YearlyHours
	for rows.Next() {
		var y YearlyHours
		if err := rows.Scan(&y.Year, &y.Hours); err != nil {
			return nil, fmt.Errorf("ошибка сканирования часов: %w", err)
		}
		out = append(out, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения часов: %w", err)
	}
	return out, nil
}

// StaticRepository отдаёт демо-профиль любому пользователю.
type StaticRepository struct{}

// NewStaticRepository создаёт репозиторий с демо-профилем.
func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

// Profile возвращает копию SampleProfile с UserID запросившего.
func (StaticRepository) Profile(ctx context.Context, userID int64) (*Profile, error) {
	p := SampleProfile
	p.UserID = userID
	p.Yearly = make([]YearlyHours, len(SampleProfile.Yearly))
	copy(p.Yearly, SampleProfile.Yearly)
	return &p, nil
}

// SampleProfile — демо-профиль приложения.
var SampleProfile = Profile{
	Name:           "Rawbin",
	VolunteerSince: 2022,
	TotalHours:     156,
	EventsAttended: 23,
	CurrentStreak:  4,
	YearsActive:    2,
	Points:         1560,
	Yearly: []YearlyHours{
		{Year: 2024, Hours: 56},
		{Year: 2023, Hours: 100},
	},
}
