// Package profile — handlers.go обрабатывает команду !profile.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// BalanceReader — живой баланс сессии наград (rewards.Service).
type BalanceReader interface {
	Balance(ctx context.Context, userID int64) (int64, error)
}

// OverlayPlayer проигрывает оверлей стрика (streak.Player).
type OverlayPlayer interface {
	Play(ctx context.Context, chatID int64, weeks int) error
}

// Handler обрабатывает команды профиля.
type Handler struct {
	service   *Service
	balances  BalanceReader
	overlay   OverlayPlayer // nil — оверлей выключен
	messenger common.Messenger
}

// NewHandler создаёт обработчик профиля. overlay может быть nil.
func NewHandler(service *Service, balances BalanceReader, overlay OverlayPlayer, messenger common.Messenger) *Handler {
	return &Handler{
		service:   service,
		balances:  balances,
		overlay:   overlay,
		messenger: messenger,
	}
}

// HandleProfile обрабатывает !profile: карточка профиля и оверлей стрика поверх неё.
// Возвращается после того, как оверлей спрятан.
// Очки берутся из сессии наград, поэтому обмен сразу виден в профиле.
func (h *Handler) HandleProfile(ctx context.Context, chatID, userID int64) {
	p, err := h.service.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			h.send(ctx, chatID, "❌ Your volunteer profile was not found. Ask your coordinator to register you.")
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения профиля")
		h.send(ctx, chatID, "❌ Could not load your profile")
		return
	}

	points := p.Points
	if balance, err := h.balances.Balance(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Баланс сессии недоступен, показываем баланс профиля")
	} else {
		points = balance
	}

	h.send(ctx, chatID, FormatProfile(p, points))

	// Оверлей проигрывается в горутине апдейта, поэтому занимает слот BOT_MAX_INFLIGHT
	if h.overlay != nil {
		if err := h.overlay.Play(ctx, chatID, p.CurrentStreak); err != nil && ctx.Err() == nil {
			log.WithError(err).WithField("chat_id", chatID).Warn("Ошибка показа оверлея стрика")
		}
	}
}

// FormatProfile рендерит карточку профиля.
func FormatProfile(p *Profile, points int64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 %s\nVolunteer since %d\n\n", p.Name, p.VolunteerSince)
	fmt.Fprintf(&sb, "⭐ %s Points Available\nClaim Rewards: !rewards\n\n", common.FormatNumber(points))
	fmt.Fprintf(&sb, "⏱ %d Total Hours\n", p.TotalHours)
	fmt.Fprintf(&sb, "📅 %d Events\n", p.EventsAttended)
	fmt.Fprintf(&sb, "🔥 %d Week Streak\n", p.CurrentStreak)
	fmt.Fprintf(&sb, "🏅 %d Years Active", p.YearsActive)

	if len(p.Yearly) > 0 {
		sb.WriteString("\n\n📜 Yearly Certificates\nGet certificates for your volunteer work\n")
		for _, y := range p.Yearly {
			fmt.Fprintf(&sb, "\n%d: %s (!certificate %d)", y.Year, common.FormatHours(y.Hours), y.Year)
		}
	}
	return sb.String()
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
