// Package profile отдаёт статистику волонтёра: часы, события, стрик,
// очки и часы по годам. models.go описывает структуру профиля.
package profile

// YearlyHours — часы волонтёрства за один год.
type YearlyHours struct {
	Year  int `db:"year"`
	Hours int `db:"hours"`
}

// Profile — профиль волонтёра. Данные только для чтения:
// Points — баланс на момент открытия сессии, живой баланс хранит rewards.Session.
type Profile struct {
	UserID         int64  `db:"telegram_id"`
	Name           string `db:"name"`
	VolunteerSince int    `db:"volunteer_since"`
	TotalHours     int    `db:"total_hours"`
	EventsAttended int    `db:"events_attended"`
	CurrentStreak  int    `db:"current_streak"` // в неделях
	YearsActive    int    `db:"years_active"`
	Points         int64  `db:"points"`

	// Новые годы первыми
	Yearly []YearlyHours `db:"-"`
}

// HoursIn возвращает часы за год и признак, что год есть в профиле.
func (p *Profile) HoursIn(year int) (int, bool) {
	for _, y := range p.Yearly {
		if y.Year == year {
			return y.Hours, true
		}
	}
	return 0, false
}
