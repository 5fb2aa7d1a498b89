// Package admin — repository.go хранит админ-сессии и попытки входа.
// MemoryStore — в памяти процесса (PROFILE_SOURCE=static),
// Repository — в таблицах admin_sessions и admin_login_attempts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Store — хранилище сессий и попыток входа.
type Store interface {
	CreateSession(ctx context.Context, session *AdminSession) error
	// ActiveSession возвращает common.ErrSessionExpired, если активной сессии нет.
	ActiveSession(ctx context.Context, userID int64, now time.Time) (*AdminSession, error)
	DeactivateSession(ctx context.Context, userID int64) error
	UpdateActivity(ctx context.Context, userID int64, now time.Time) error
	LogAttempt(ctx context.Context, attempt LoginAttempt) error
	FailedAttempts(ctx context.Context, userID int64, since time.Time) (int, error)
}

// MemoryStore хранит всё в памяти. После рестарта нужно войти заново.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*AdminSession
	attempts []LoginAttempt
}

// NewMemoryStore создаёт хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*AdminSession)}
}

func (m *MemoryStore) CreateSession(_ context.Context, session *AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	m.sessions[session.UserID] = &s
	return nil
}

func (m *MemoryStore) ActiveSession(_ context.Context, userID int64, now time.Time) (*AdminSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || !now.Before(s.ExpiresAt) {
		return nil, common.ErrSessionExpired
	}
	out := *s
	return &out, nil
}

func (m *MemoryStore) DeactivateSession(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *MemoryStore) UpdateActivity(_ context.Context, userID int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.LastActivity = now
	}
	return nil
}

func (m *MemoryStore) LogAttempt(_ context.Context, attempt LoginAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attempt)
	return nil
}

func (m *MemoryStore) FailedAttempts(_ context.Context, userID int64, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Заодно выбрасываем старые попытки
	kept := m.attempts[:0]
	count := 0
	for _, a := range m.attempts {
		if a.AttemptTime.Before(since) {
			continue
		}
		kept = append(kept, a)
		if a.UserID == userID && !a.Success {
			count++
		}
	}
	m.attempts = kept
	return count, nil
}

// Repository работает с админ-таблицами PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession создаёт новую сессию администратора.
func (r *Repository) CreateSession(ctx context.Context, session *AdminSession) error {
	query := `
		INSERT INTO admin_sessions (user_id, session_token, authenticated_at, expires_at, last_activity, is_active)
		VALUES ($1, $2, $3, $4, $3, TRUE)
	`
	_, err := r.db.Exec(ctx, query, session.UserID, session.SessionToken, session.AuthenticatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// ActiveSession возвращает активную сессию пользователя.
func (r *Repository) ActiveSession(ctx context.Context, userID int64, now time.Time) (*AdminSession, error) {
	query := `
		SELECT user_id, session_token, authenticated_at, expires_at, last_activity
		FROM admin_sessions
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > $2
		ORDER BY authenticated_at DESC
		LIMIT 1
	`
	var s AdminSession
	err := r.db.QueryRow(ctx, query, userID, now).Scan(
		&s.UserID, &s.SessionToken, &s.AuthenticatedAt, &s.ExpiresAt, &s.LastActivity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrSessionExpired
		}
		return nil, fmt.Errorf("ошибка получения сессии: %w", err)
	}
	return &s, nil
}

// DeactivateSession деактивирует сессию.
func (r *Repository) DeactivateSession(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1`, userID)
	return err
}

// UpdateActivity обновляет время последней активности.
func (r *Repository) UpdateActivity(ctx context.Context, userID int64, now time.Time) error {
	query := `UPDATE admin_sessions SET last_activity = $2 WHERE user_id = $1 AND is_active = TRUE`
	_, err := r.db.Exec(ctx, query, userID, now)
	return err
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, attempt LoginAttempt) error {
	query := `INSERT INTO admin_login_attempts (user_id, attempt_time, success) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, attempt.UserID, attempt.AttemptTime, attempt.Success)
	return err
}

// FailedAttempts возвращает количество неудачных попыток начиная с since.
func (r *Repository) FailedAttempts(ctx context.Context, userID int64, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}
