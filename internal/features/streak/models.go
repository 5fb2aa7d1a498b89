// Package streak показывает оверлей «N Week Streak!» на экране профиля.
// models.go описывает оверлей как конечную последовательность шагов
// видимости. Оверлей не знает ничего о балансе и наградах.
package streak

import (
	"fmt"
	"time"
)

// Action — что сделать с оверлеем на шаге.
type Action int

const (
	ActionShow Action = iota // Отправить сообщение оверлея
	ActionHide               // Удалить его
)

func (a Action) String() string {
	switch a {
	case ActionShow:
		return "show"
	case ActionHide:
		return "hide"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Step — один переход видимости. Wait отсчитывается от предыдущего шага.
type Step struct {
	Action Action
	Wait   time.Duration
}

// Sequence возвращает шаги оверлея: показать сразу, спрятать через hold.
//
//	show(0) → hold → hide
func Sequence(hold time.Duration) []Step {
	if hold < 0 {
		hold = 0
	}
	return []Step{
		{Action: ActionShow},
		{Action: ActionHide, Wait: hold},
	}
}

// FormatOverlay — текст оверлея.
// Пример: FormatOverlay(4) → "🔥 4\nWeek Streak!"
func FormatOverlay(weeks int) string {
	return fmt.Sprintf("🔥 %d\nWeek Streak!", weeks)
}
