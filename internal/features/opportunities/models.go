// Package opportunities показывает карточки волонтёрских возможностей:
// список, поиск и подробную карточку.
package opportunities

import "strings"

// Opportunity — карточка возможности.
type Opportunity struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	Organization string `db:"organization"`
	Duration     string `db:"duration"`
	Location     string `db:"location"`
	Description  string `db:"description"`
	Requirements string `db:"requirements"` // строки через \n
	Impact       string `db:"impact"`
	ImageURL     string `db:"image_url"`
}

// Matches — совпадает ли карточка с поисковым запросом.
// Поиск без учёта регистра по названию, организации и месту.
// Пустой запрос совпадает со всем.
func (o Opportunity) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{o.Title, o.Organization, o.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
