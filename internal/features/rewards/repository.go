// Package rewards — repository.go читает каталог наград.
// Запись в каталог бот не делает: каталог неизменяем на время сессии.
package rewards

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository читает каталог из таблицы rewards.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий наград.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Rewards возвращает активные награды в порядке position.
func (r *Repository) Rewards(ctx context.Context) ([]Reward, error) {
	query := `
		SELECT id, name, description, cost, icon
		FROM rewards
		WHERE is_active = TRUE
		ORDER BY position, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения наград: %w", err)
	}
	defer rows.Close()

	var out []Reward
	for rows.Next() {
		var rw Reward
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.Cost, &rw.Icon); err != nil {
			return nil, fmt.Errorf("ошибка сканирования награды: %w", err)
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения наград: %w", err)
	}
	return out, nil
}

// StaticRepository отдаёт встроенный демо-каталог.
type StaticRepository struct{}

// NewStaticRepository создаёт репозиторий с демо-каталогом.
func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

// Rewards возвращает копию SampleRewards.
func (StaticRepository) Rewards(ctx context.Context) ([]Reward, error) {
	out := make([]Reward, len(SampleRewards))
	copy(out, SampleRewards)
	return out, nil
}

// SampleRewards — демо-каталог приложения.
var SampleRewards = []Reward{
	{ID: "1", Name: "Amazon Gift Card", Description: "€25 Amazon Gift Card", Cost: 500, Icon: "🎁"},
	{ID: "2", Name: "Premium T-Shirt", Description: "Exclusive volunteer program t-shirt", Cost: 300, Icon: "👕"},
	{ID: "3", Name: "Professional Course", Description: "Access to online learning platform", Cost: 1000, Icon: "🎓"},
	{ID: "4", Name: "Coffee Voucher", Description: "€10 Starbucks Gift Card", Cost: 200, Icon: "☕"},
	{ID: "5", Name: "Meet The CDO", Description: "Get to meet the CDO", Cost: 1500, Icon: "👔"},
}
