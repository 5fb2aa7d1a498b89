// Package common — pluralize.go содержит утилиты форматирования чисел
// для сообщений бота.
package common

import (
	"fmt"
	"strings"
)

// FormatPointsDelta создаёт строку вида "+100 points" или "-50 points".
// Знак «+» или «-» добавляется автоматически.
//
// Примеры:
//
//	FormatPointsDelta(100)  → "+100 points"
//	FormatPointsDelta(-500) → "-500 points"
//	FormatPointsDelta(1)    → "+1 point"
func FormatPointsDelta(amount int64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%s %s", FormatNumber(amount), PluralizePoints(amount))
	}
	return fmt.Sprintf("-%s %s", strings.TrimPrefix(FormatNumber(amount), "-"), PluralizePoints(amount))
}

// FormatNumber форматирует число с разделителями тысяч (запятыми).
// Пример: FormatNumber(2350) → "2,350"
// Модуль считается в uint64: -math.MinInt64 не помещается в int64.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + formatUnsigned(uint64(-(n+1))+1)
	}
	return formatUnsigned(uint64(n))
}

func formatUnsigned(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", formatUnsigned(n/1000), n%1000)
}
