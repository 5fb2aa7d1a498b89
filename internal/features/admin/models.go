// Package admin реализует админ-команды с парольной аутентификацией.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// AdminSession — активная сессия администратора.
type AdminSession struct {
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// AdminState — состояние диалога с админом.
type AdminState struct {
	State     string    // "", "awaiting_password"
	ExpiresAt time.Time // Когда состояние истекает (5 минут)
}

// Возможные состояния админ-диалога
const (
	StateNone             = ""                  // Нет активного состояния
	StateAwaitingPassword = "awaiting_password" // Ждём пароль
)

// Лимиты аутентификации
const (
	MaxFailedAttempts = 3              // неудачных попыток до блокировки
	LockoutPeriod     = time.Hour      // окно подсчёта попыток
	SessionTTL        = 24 * time.Hour // жизнь админ-сессии
	StateTTL          = 5 * time.Minute
)
