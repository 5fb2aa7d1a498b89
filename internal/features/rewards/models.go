// Package rewards управляет наградами за волонтёрство: каталогом,
// балансом очков сессии и обменом очков на награды.
// models.go описывает награды, каталог и результаты попытки обмена.
package rewards

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Reward — запись каталога наград.
type Reward struct {
	ID          string `db:"id"`          // Уникальный ID, стабилен в пределах сессии
	Name        string `db:"name"`        // Название для отображения
	Description string `db:"description"` // Описание
	Cost        int64  `db:"cost"`        // Цена в очках (>= 0)
	Icon        string `db:"icon"`        // Подсказка для иконки (эмодзи в боте)
}

// Catalog — неизменяемый набор наград.
// Порядок наград сохраняется таким, каким его отдал источник данных.
type Catalog struct {
	rewards []Reward
	byID    map[string]int
}

// NewCatalog проверяет инварианты и собирает каталог.
// Пустой id, дубликат id или отрицательная цена — ошибка в данных,
// с таким каталогом бот не стартует.
func NewCatalog(rewards []Reward) (*Catalog, error) {
	c := &Catalog{
		rewards: make([]Reward, 0, len(rewards)),
		byID:    make(map[string]int, len(rewards)),
	}
	for _, r := range rewards {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: награда %q без id", common.ErrInvalidCatalog, r.Name)
		}
		if r.Cost < 0 {
			return nil, fmt.Errorf("%w: награда %s стоит %d", common.ErrInvalidCatalog, r.ID, r.Cost)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: дубликат id %s", common.ErrInvalidCatalog, r.ID)
		}
		c.byID[r.ID] = len(c.rewards)
		c.rewards = append(c.rewards, r)
	}
	return c, nil
}

// Get возвращает награду по id.
func (c *Catalog) Get(id string) (Reward, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Reward{}, false
	}
	return c.rewards[i], true
}

// All возвращает копию списка наград.
func (c *Catalog) All() []Reward {
	out := make([]Reward, len(c.rewards))
	copy(out, c.rewards)
	return out
}

// Len — количество наград.
func (c *Catalog) Len() int {
	return len(c.rewards)
}

// ClaimAttempt — результат Evaluate. Нигде не хранится.
type ClaimAttempt struct {
	Eligible  bool  // Хватает очков
	Shortfall int64 // Сколько не хватает (> 0, только если !Eligible)
}

// OutcomeKind — чем закончилась попытка обмена.
type OutcomeKind int

const (
	OutcomeSuccess    OutcomeKind = iota // Очки списаны
	OutcomeIneligible                    // Не хватает очков
	OutcomeCancelled                     // Пользователь отменил подтверждение
)

// Outcome — итог обмена, который показывается пользователю.
type Outcome struct {
	Kind      OutcomeKind
	Shortfall int64 // только для OutcomeIneligible
}

// Success — очки списаны.
func Success() Outcome { return Outcome{Kind: OutcomeSuccess} }

// Ineligible — не хватает shortfall очков.
func Ineligible(shortfall int64) Outcome {
	return Outcome{Kind: OutcomeIneligible, Shortfall: shortfall}
}

// Cancelled — подтверждение отменено.
func Cancelled() Outcome { return Outcome{Kind: OutcomeCancelled} }

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "Success"
	case OutcomeIneligible:
		return fmt.Sprintf("Ineligible(%d)", o.Shortfall)
	case OutcomeCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Outcome(%d)", int(o.Kind))
}

// PendingClaim — открытое подтверждение обмена.
// Token уходит в callback-кнопки «Claim» и «Cancel».
type PendingClaim struct {
	Token     string
	RewardID  string
	ExpiresAt time.Time
}

// Receipt — квитанция успешного обмена (живёт только в памяти сессии).
type Receipt struct {
	ID           uuid.UUID
	Reward       Reward
	BalanceAfter int64
	ClaimedAt    time.Time
}
