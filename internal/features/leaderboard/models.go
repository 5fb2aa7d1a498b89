// Package leaderboard ранжирует волонтёров по часам: пьедестал из трёх
// мест и остальной список.
package leaderboard

// Volunteer — строка таблицы лидеров.
type Volunteer struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Hours int    `db:"hours"`
}

// Entry — волонтёр с местом в рейтинге (с 1).
type Entry struct {
	Rank int
	Volunteer
}

// Board — результат ранжирования.
type Board struct {
	Podium []Entry // до трёх мест: золото, серебро, бронза
	Rest   []Entry // с 4-го места
}

// Medal возвращает эмодзи медали для места на пьедестале.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}
