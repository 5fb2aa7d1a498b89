// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: плюрализация, форматирование очков и часов, работа с временем.
package common

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// PluralizePoints возвращает правильную форму слова «point» для числа n.
//
// Примеры:
//
//	PluralizePoints(1)   → "point"
//	PluralizePoints(0)   → "points"
//	PluralizePoints(500) → "points"
func PluralizePoints(n int64) string {
	if n == 1 || n == -1 {
		return "point"
	}
	return "points"
}

// FormatPoints форматирует количество очков в читабельную строку.
// Пример: FormatPoints(1560) → "1,560 points"
func FormatPoints(points int64) string {
	return fmt.Sprintf("%s %s", FormatNumber(points), PluralizePoints(points))
}

// PluralizeHours возвращает «hour» или «hours».
func PluralizeHours(n int) string {
	if n == 1 || n == -1 {
		return "hour"
	}
	return "hours"
}

// FormatHours форматирует часы волонтёрства.
// Пример: FormatHours(56) → "56 hours"
func FormatHours(hours int) string {
	return fmt.Sprintf("%d %s", hours, PluralizeHours(hours))
}

// LoadLocation загружает часовой пояс по имени из конфигурации.
// Если пояс не найден (нет tzdata в контейнере) — используем UTC.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.WithError(err).WithField("timezone", name).Warn("Не удалось загрузить часовой пояс, используем UTC")
		return time.UTC
	}
	return loc
}

// FormatDate форматирует дату для сертификатов: "October 17, 2026".
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("January 2, 2006")
}
