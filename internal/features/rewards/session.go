// Package rewards — session.go хранит баланс очков одного пользователя
// на время сессии и проводит обмен через двухшаговое подтверждение.
//
// Поток обмена:
//
//	RequestClaim(id) → Ineligible?  → показать нехватку, ничего не меняем
//	                 → Eligible     → открыть PendingClaim (token)
//	Confirm(token)   → Claim(balance, reward) → применить новый баланс один раз
//	Cancel(token)    → Cancelled, Claim не вызывается
package rewards

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Session — состояние одного пользователя: баланс, снимок каталога,
// открытые подтверждения и квитанции. Ничего не сохраняется в БД.
type Session struct {
	UserID int64

	mu         sync.Mutex
	balance    int64
	catalog    *Catalog
	pending    map[string]PendingClaim
	receipts   []Receipt
	startedAt  time.Time
	lastSeen   time.Time
	confirmTTL time.Duration
	now        func() time.Time
}

// NewSession открывает сессию с начальным балансом из профиля.
func NewSession(userID, initialBalance int64, catalog *Catalog, confirmTTL time.Duration, now func() time.Time) (*Session, error) {
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: user_id=%d, баланс %d", common.ErrNegativeBalance, userID, initialBalance)
	}
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Session{
		UserID:     userID,
		balance:    initialBalance,
		catalog:    catalog,
		pending:    make(map[string]PendingClaim),
		startedAt:  t,
		lastSeen:   t,
		confirmTTL: confirmTTL,
		now:        now,
	}, nil
}

// Balance возвращает текущий баланс.
func (s *Session) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Catalog возвращает каталог, с которым открыта сессия.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Receipts возвращает копию квитанций сессии (старые первыми).
func (s *Session) Receipts() []Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Receipt, len(s.receipts))
	copy(out, s.receipts)
	return out
}

// StartedAt — время открытия сессии.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// LastSeen — время последнего обращения к сессии.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Touch продлевает жизнь сессии.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
}

// Evaluate проверяет награду против текущего баланса, ничего не меняя.
func (s *Session) Evaluate(rewardID string) (Reward, ClaimAttempt, error) {
	reward, ok := s.catalog.Get(rewardID)
	if !ok {
		return Reward{}, ClaimAttempt{}, fmt.Errorf("%w: %s", common.ErrUnknownReward, rewardID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return reward, Evaluate(s.balance, reward), nil
}

// RequestClaim — первый шаг обмена.
// При нехватке очков подтверждение не открывается и PendingClaim пустой.
func (s *Session) RequestClaim(rewardID string) (Reward, ClaimAttempt, PendingClaim, error) {
	reward, ok := s.catalog.Get(rewardID)
	if !ok {
		return Reward{}, ClaimAttempt{}, PendingClaim{}, fmt.Errorf("%w: %s", common.ErrUnknownReward, rewardID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.lastSeen = now

	attempt := Evaluate(s.balance, reward)
	if !attempt.Eligible {
		return reward, attempt, PendingClaim{}, nil
	}

	pc := PendingClaim{
		Token:     uuid.NewString(),
		RewardID:  reward.ID,
		ExpiresAt: now.Add(s.confirmTTL),
	}
	s.pending[pc.Token] = pc
	return reward, attempt, pc, nil
}

// Confirm — второй шаг: пользователь нажал «Claim».
// Токен одноразовый: повторное нажатие вернёт ErrNoPendingClaim
// и не спишет очки второй раз. Баланс перепроверяется на момент подтверждения,
// т.к. между шагами мог пройти другой обмен.
func (s *Session) Confirm(token string) (Reward, Outcome, *Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc, err := s.takePending(token)
	if err != nil {
		return Reward{}, Outcome{}, nil, err
	}

	reward, ok := s.catalog.Get(pc.RewardID)
	if !ok {
		// Каталог сессии неизменяемый, сюда попасть нельзя
		return Reward{}, Outcome{}, nil, fmt.Errorf("%w: %s", common.ErrUnknownReward, pc.RewardID)
	}

	newBalance, outcome := Claim(s.balance, reward)
	if outcome.Kind != OutcomeSuccess {
		return reward, outcome, nil, nil
	}

	s.balance = newBalance
	receipt := Receipt{
		ID:           uuid.New(),
		Reward:       reward,
		BalanceAfter: newBalance,
		ClaimedAt:    s.now(),
	}
	s.receipts = append(s.receipts, receipt)
	return reward, outcome, &receipt, nil
}

// Cancel — пользователь нажал «Cancel». Баланс не трогаем, Claim не вызываем.
func (s *Session) Cancel(token string) (Reward, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc, err := s.takePending(token)
	if err != nil {
		return Reward{}, Outcome{}, err
	}
	reward, _ := s.catalog.Get(pc.RewardID)
	return reward, Cancelled(), nil
}

// PendingCount — сколько подтверждений сейчас открыто.
func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// ExpirePending удаляет просроченные подтверждения и возвращает их число.
func (s *Session) ExpirePending(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for token, pc := range s.pending {
		if !now.Before(pc.ExpiresAt) {
			delete(s.pending, token)
			expired++
		}
	}
	return expired
}

// takePending достаёт и удаляет подтверждение. Вызывать под s.mu.
func (s *Session) takePending(token string) (PendingClaim, error) {
	now := s.now()
	s.lastSeen = now

	pc, ok := s.pending[token]
	if !ok {
		return PendingClaim{}, common.ErrNoPendingClaim
	}
	delete(s.pending, token)
	if !now.Before(pc.ExpiresAt) {
		return PendingClaim{}, common.ErrNoPendingClaim
	}
	return pc, nil
}
