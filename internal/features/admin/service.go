// Package admin — service.go содержит логику аутентификации, управления сессиями
// и состояние диалога ввода пароля.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
)

// Service управляет админ-доступом.
type Service struct {
	store    Store
	cfg      *config.Config
	now      func() time.Time
	states   map[int64]*AdminState // Состояния диалогов (in-memory)
	statesMu sync.RWMutex
}

// NewService создаёт сервис админки.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		now:    time.Now,
		states: make(map[int64]*AdminState),
	}
}

// IsAdmin — входит ли пользователь в ADMIN_IDS.
func (s *Service) IsAdmin(userID int64) bool {
	return s.cfg.IsAdmin(userID)
}

// Enabled — задан ли ADMIN_PASSWORD_HASH.
func (s *Service) Enabled() bool {
	return s.cfg.AdminPasswordHash != ""
}

// VerifyPassword проверяет пароль администратора с использованием Argon2id.
// Включает защиту от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	if !s.Enabled() {
		return common.ErrAdminDisabled
	}
	if !s.IsAdmin(userID) {
		return common.ErrNotAdmin
	}

	now := s.now()

	// Проверяем лимит попыток
	attempts, err := s.store.FailedAttempts(ctx, userID, now.Add(-LockoutPeriod))
	if err != nil {
		return fmt.Errorf("ошибка проверки попыток входа: %w", err)
	}
	if attempts >= MaxFailedAttempts {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.store.LogAttempt(ctx, LoginAttempt{UserID: userID, AttemptTime: now, Success: match}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать попытку входа")
	}

	if !match {
		log.WithField("user_id", userID).Warn("Неверный пароль администратора")
		return common.ErrWrongPassword
	}

	session := &AdminSession{
		UserID:          userID,
		SessionToken:    generateSecureToken(),
		AuthenticatedAt: now,
		ExpiresAt:       now.Add(SessionTTL),
		LastActivity:    now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Администратор вошёл")
	return nil
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия,
// и продлевает отметку активности.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	now := s.now()
	session, err := s.store.ActiveSession(ctx, userID, now)
	if err != nil || session == nil {
		return false
	}
	if err := s.store.UpdateActivity(ctx, userID, now); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Ошибка обновления активности")
	}
	return true
}

// Logout завершает админ-сессию.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.store.DeactivateSession(ctx, userID)
}

// GetState возвращает текущее состояние диалога.
func (s *Service) GetState(userID int64) *AdminState {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if s.now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &AdminState{
		State:     stateName,
		ExpiresAt: s.now().Add(StateTTL),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
