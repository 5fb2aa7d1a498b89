// Package rewards — service.go содержит бизнес-логику наград:
// открытие сессий, обмен очков и очистку неактивных сессий.
package rewards

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
)

// CatalogSource — откуда берётся каталог наград.
// Реализации: StaticRepository (демо-данные) и Repository (PostgreSQL).
type CatalogSource interface {
	Rewards(ctx context.Context) ([]Reward, error)
}

// BalanceSource — откуда берётся начальный баланс сессии.
// Это профиль волонтёра (profile.Service).
type BalanceSource interface {
	InitialBalance(ctx context.Context, userID int64) (int64, error)
}

// SessionInfo — сводка по сессии для админки.
type SessionInfo struct {
	UserID   int64
	Balance  int64
	Pending  int
	Claimed  int
	LastSeen time.Time
}

// Service управляет сессиями наград всех пользователей.
type Service struct {
	catalogs   CatalogSource
	balances   BalanceSource
	confirmTTL time.Duration
	idleTTL    time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewService создаёт сервис наград.
func NewService(catalogs CatalogSource, balances BalanceSource, cfg *config.Config) *Service {
	return &Service{
		catalogs:   catalogs,
		balances:   balances,
		confirmTTL: cfg.ClaimConfirmTTL,
		idleTTL:    cfg.SessionIdleTTL,
		now:        time.Now,
		sessions:   make(map[int64]*Session),
	}
}

// LoadCatalog читает каталог из источника и проверяет его.
// Вызывается при старте приложения: битый каталог = бот не запускается.
func (s *Service) LoadCatalog(ctx context.Context) (*Catalog, error) {
	items, err := s.catalogs.Rewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки каталога: %w", err)
	}
	return NewCatalog(items)
}

// Session возвращает сессию пользователя, открывая её при первом обращении.
func (s *Service) Session(ctx context.Context, userID int64) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		sess.Touch()
		return sess, nil
	}

	// Читаем источник без блокировки — это может быть запрос в БД
	balance, err := s.balances.InitialBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения начального баланса: %w", err)
	}
	catalog, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	opened, err := NewSession(userID, balance, catalog, s.confirmTTL, s.now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Параллельный апдейт мог открыть сессию раньше нас — берём её
	if existing, ok := s.sessions[userID]; ok {
		return existing, nil
	}
	s.sessions[userID] = opened

	log.WithFields(log.Fields{
		"user_id": userID,
		"balance": balance,
		"rewards": catalog.Len(),
	}).Info("Сессия открыта")

	return opened, nil
}

// Balance возвращает текущий баланс сессии.
func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	sess, err := s.Session(ctx, userID)
	if err != nil {
		return 0, err
	}
	return sess.Balance(), nil
}

// RequestClaim — первый шаг обмена для пользователя.
func (s *Service) RequestClaim(ctx context.Context, userID int64, rewardID string) (Reward, ClaimAttempt, PendingClaim, error) {
	sess, err := s.Session(ctx, userID)
	if err != nil {
		return Reward{}, ClaimAttempt{}, PendingClaim{}, err
	}
	reward, attempt, pc, err := sess.RequestClaim(rewardID)
	if err != nil {
		return reward, attempt, pc, err
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"reward_id": reward.ID,
		"eligible":  attempt.Eligible,
		"shortfall": attempt.Shortfall,
	}).Debug("Запрос на обмен")

	return reward, attempt, pc, nil
}

// Confirm — пользователь подтвердил обмен.
// Если сессия уже закрыта (истекла или её завершил админ) — подтверждения нет.
func (s *Service) Confirm(ctx context.Context, userID int64, token string) (Reward, Outcome, *Receipt, error) {
	sess, ok := s.existing(userID)
	if !ok {
		return Reward{}, Outcome{}, nil, common.ErrNoPendingClaim
	}
	reward, outcome, receipt, err := sess.Confirm(token)
	if err != nil {
		return reward, outcome, receipt, err
	}

	fields := log.Fields{
		"user_id":   userID,
		"reward_id": reward.ID,
		"cost":      reward.Cost,
		"outcome":   outcome.String(),
	}
	if receipt != nil {
		fields["receipt"] = receipt.ID.String()
		fields["balance"] = receipt.BalanceAfter
	}
	log.WithFields(fields).Info("Обмен подтверждён")

	return reward, outcome, receipt, nil
}

// Cancel — пользователь отменил обмен.
func (s *Service) Cancel(ctx context.Context, userID int64, token string) (Reward, Outcome, error) {
	sess, ok := s.existing(userID)
	if !ok {
		return Reward{}, Outcome{}, common.ErrNoPendingClaim
	}
	reward, outcome, err := sess.Cancel(token)
	if err != nil {
		return reward, outcome, err
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"reward_id": reward.ID,
	}).Debug("Обмен отменён")

	return reward, outcome, nil
}

// EndSession закрывает сессию пользователя. Баланс при этом теряется.
func (s *Service) EndSession(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		return false
	}
	delete(s.sessions, userID)
	log.WithField("user_id", userID).Info("Сессия закрыта")
	return true
}

// Sweep закрывает неактивные сессии и удаляет просроченные подтверждения.
// Запускается кроном.
func (s *Service) Sweep(now time.Time) (ended int, expired int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) >= s.idleTTL {
			delete(s.sessions, userID)
			ended++
			continue
		}
		expired += sess.ExpirePending(now)
	}

	if ended > 0 || expired > 0 {
		log.WithFields(log.Fields{
			"ended":   ended,
			"expired": expired,
			"active":  len(s.sessions),
		}).Info("Очистка сессий завершена")
	}
	return ended, expired
}

// ActiveSessions возвращает сводку по открытым сессиям (по user_id).
func (s *Service) ActiveSessions() []SessionInfo {
	s.mu.Lock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	s.mu.Unlock()

	out := make([]SessionInfo, 0, len(list))
	for _, sess := range list {
		out = append(out, SessionInfo{
			UserID:   sess.UserID,
			Balance:  sess.Balance(),
			Pending:  sess.PendingCount(),
			Claimed:  len(sess.Receipts()),
			LastSeen: sess.LastSeen(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (s *Service) existing(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}
