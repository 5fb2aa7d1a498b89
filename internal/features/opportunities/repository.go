// Package opportunities — repository.go читает таблицу opportunities.
package opportunities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository читает возможности из PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий возможностей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Opportunities возвращает открытые возможности в порядке position.
func (r *Repository) Opportunities(ctx context.Context) ([]Opportunity, error) {
	query := `
		SELECT id, title, organization, duration, location,
		       description, requirements, impact, image_url
		FROM opportunities
		WHERE is_open = TRUE
		ORDER BY position, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения возможностей: %w", err)
	}
	defer rows.Close()

	var out []Opportunity
	for rows.Next() {
		var o Opportunity
		err := rows.Scan(
			&o.ID, &o.Title, &o.Organization, &o.Duration, &o.Location,
			&o.Description, &o.Requirements, &o.Impact, &o.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования возможности: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения возможностей: %w", err)
	}
	return out, nil
}

// StaticRepository отдаёт демо-карточки.
type StaticRepository struct{}

// NewStaticRepository создаёт репозиторий с демо-карточками.
func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

// Opportunities возвращает копию SampleOpportunities.
func (StaticRepository) Opportunities(ctx context.Context) ([]Opportunity, error) {
	out := make([]Opportunity, len(SampleOpportunities))
	copy(out, SampleOpportunities)
	return out, nil
}

// SampleOpportunities — демо-карточки приложения.
var SampleOpportunities = []Opportunity{
	{
		ID:           "1",
		Title:        "Food Bank Assistant",
		Organization: "City Food Bank",
		Duration:     "3 hours",
		Location:     "Downtown Center",
		Description:  "Help sort and distribute food to families in need. Join our dedicated team in making a difference in the lives of local families facing food insecurity.",
		Requirements: "• Must be 16 or older\n• Able to lift 20 lbs\n• Comfortable standing for long periods",
		Impact:       "Your 3 hours help provide meals to over 50 families in need.",
		ImageURL:     "https://picsum.photos/seed/food1/800/600",
	},
	{
		ID:           "2",
		Title:        "Park Cleanup Drive",
		Organization: "Green Earth",
		Duration:     "2 hours",
		Location:     "Central Park",
		Description:  "Join our weekly park cleanup initiative to maintain our beautiful green spaces. Help remove litter, maintain trails, and preserve nature.",
		Requirements: "• All ages welcome\n• Outdoor activity\n• Equipment provided",
		Impact:       "Help maintain 5 acres of public park space for community enjoyment.",
		ImageURL:     "https://picsum.photos/seed/park2/800/600",
	},
	{
		ID:           "3",
		Title:        "Senior Home Companion",
		Organization: "Golden Years Care",
		Duration:     "4 hours",
		Location:     "Sunshine Retirement Home",
		Description:  "Spend meaningful time with elderly residents through activities like reading, playing games, or simply engaging in conversation.",
		Requirements: "• Background check required\n• Good communication skills\n• Patience and empathy",
		Impact:       "Provide companionship to seniors and reduce social isolation.",
		ImageURL:     "https://picsum.photos/seed/senior3/800/600",
	},
}
