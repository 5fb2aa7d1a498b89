// Package rewards — handlers.go обрабатывает команды и кнопки наград:
// !points (баланс), !rewards (каталог), !claim <id> (обмен),
// кнопки «Claim» / «Cancel» в диалоге подтверждения.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Префиксы callback-данных кнопок
const (
	CallbackClaim   = "claim"   // claim:<reward_id> — кнопка в каталоге
	CallbackConfirm = "confirm" // confirm:<token> — «Claim» в подтверждении
	CallbackCancel  = "cancel"  // cancel:<token> — «Cancel» в подтверждении
)

// Handler обрабатывает команды наград.
type Handler struct {
	service   *Service         // Сервис наград
	messenger common.Messenger // Отправка ответов
}

// NewHandler создаёт новый обработчик наград.
func NewHandler(service *Service, messenger common.Messenger) *Handler {
	return &Handler{service: service, messenger: messenger}
}

// ParseCallback разбирает "action:arg".
func ParseCallback(data string) (action, arg string, ok bool) {
	action, arg, ok = strings.Cut(data, ":")
	if !ok || arg == "" {
		return "", "", false
	}
	switch action {
	case CallbackClaim, CallbackConfirm, CallbackCancel:
		return action, arg, true
	}
	return "", "", false
}

// HandlePoints обрабатывает !points — показывает баланс.
//
// Формат ответа:
//
//	⭐ 1,560 Points Available
func (h *Handler) HandlePoints(ctx context.Context, chatID, userID int64) {
	balance, err := h.service.Balance(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения баланса")
		h.send(ctx, chatID, "❌ Could not load your points")
		return
	}
	h.send(ctx, chatID, FormatBalance(balance))
}

// HandleRewards обрабатывает !rewards — каталог с кнопками «Claim».
// Награды, на которые не хватает очков, помечены замком,
// но кнопка всё равно работает и покажет нехватку.
func (h *Handler) HandleRewards(ctx context.Context, chatID, userID int64) {
	sess, err := h.service.Session(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка открытия сессии")
		h.send(ctx, chatID, "❌ Could not load rewards")
		return
	}

	balance := sess.Balance()
	items := sess.Catalog().All()

	var sb strings.Builder
	sb.WriteString(FormatBalance(balance))
	sb.WriteString("\n\n")

	rows := make([][]common.Button, 0, len(items))
	for _, r := range items {
		lock := ""
		if !Evaluate(balance, r).Eligible {
			lock = " 🔒"
		}
		sb.WriteString(fmt.Sprintf("%s %s%s\n%s\n⭐ %s\n\n", r.Icon, r.Name, lock, r.Description, common.FormatPoints(r.Cost)))
		rows = append(rows, []common.Button{{
			Text: fmt.Sprintf("Claim %s", r.Name),
			Data: CallbackClaim + ":" + r.ID,
		}})
	}

	if _, err := h.messenger.SendWithButtons(ctx, chatID, strings.TrimRight(sb.String(), "\n"), rows); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки каталога")
	}
}

// HandleClaim обрабатывает !claim <id>.
func (h *Handler) HandleClaim(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) < 1 {
		h.send(ctx, chatID, "❌ Usage: !claim <reward id>\nSee !rewards for the list")
		return
	}
	h.startClaim(ctx, chatID, userID, args[0])
}

// HandleClaimButton обрабатывает кнопку claim:<id> из каталога.
func (h *Handler) HandleClaimButton(ctx context.Context, chatID, userID int64, callbackID, rewardID string) {
	h.answer(ctx, callbackID, "")
	h.startClaim(ctx, chatID, userID, rewardID)
}

// startClaim — первый шаг: проверка баланса и запрос подтверждения.
func (h *Handler) startClaim(ctx context.Context, chatID, userID int64, rewardID string) {
	reward, attempt, pending, err := h.service.RequestClaim(ctx, userID, rewardID)
	if err != nil {
		if errors.Is(err, common.ErrUnknownReward) {
			h.send(ctx, chatID, "❌ Reward not found. See !rewards for the list")
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка запроса обмена")
		h.send(ctx, chatID, "❌ Could not start the claim")
		return
	}

	if !attempt.Eligible {
		h.send(ctx, chatID, FormatIneligible(attempt.Shortfall))
		return
	}

	rows := [][]common.Button{{
		{Text: "Cancel", Data: CallbackCancel + ":" + pending.Token},
		{Text: "Claim", Data: CallbackConfirm + ":" + pending.Token},
	}}
	if _, err := h.messenger.SendWithButtons(ctx, chatID, FormatConfirmPrompt(reward), rows); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки подтверждения")
	}
}

// HandleConfirm обрабатывает кнопку «Claim» в подтверждении.
// Сообщение с кнопками заменяется итогом, чтобы кнопку нельзя было нажать снова.
func (h *Handler) HandleConfirm(ctx context.Context, chatID int64, messageID int, userID int64, callbackID, token string) {
	reward, outcome, receipt, err := h.service.Confirm(ctx, userID, token)
	if err != nil {
		h.handleStale(ctx, chatID, messageID, callbackID, err)
		return
	}

	var text string
	switch outcome.Kind {
	case OutcomeSuccess:
		h.answer(ctx, callbackID, "Reward claimed")
		text = FormatSuccess(reward, receipt)
	case OutcomeIneligible:
		h.answer(ctx, callbackID, "")
		text = FormatIneligible(outcome.Shortfall)
	default:
		h.answer(ctx, callbackID, "")
		return
	}
	h.edit(ctx, chatID, messageID, text)
}

// HandleCancel обрабатывает кнопку «Cancel» в подтверждении.
func (h *Handler) HandleCancel(ctx context.Context, chatID int64, messageID int, userID int64, callbackID, token string) {
	reward, _, err := h.service.Cancel(ctx, userID, token)
	if err != nil {
		h.handleStale(ctx, chatID, messageID, callbackID, err)
		return
	}
	h.answer(ctx, callbackID, "Cancelled")

	balance, err := h.service.Balance(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения баланса")
		h.edit(ctx, chatID, messageID, fmt.Sprintf("Claim of %s cancelled.", reward.Name))
		return
	}
	h.edit(ctx, chatID, messageID, FormatCancelled(reward, balance))
}

func (h *Handler) handleStale(ctx context.Context, chatID int64, messageID int, callbackID string, err error) {
	if errors.Is(err, common.ErrNoPendingClaim) {
		h.answer(ctx, callbackID, "This confirmation has expired")
		h.edit(ctx, chatID, messageID, "⌛ This confirmation has expired. Use !rewards to try again.")
		return
	}
	log.WithError(err).WithField("chat_id", chatID).Error("Ошибка подтверждения обмена")
	h.answer(ctx, callbackID, "Something went wrong")
}

// FormatBalance — шапка экрана наград.
func FormatBalance(balance int64) string {
	return fmt.Sprintf("⭐ %s Points Available", common.FormatNumber(balance))
}

// FormatConfirmPrompt — текст запроса подтверждения.
func FormatConfirmPrompt(r Reward) string {
	return fmt.Sprintf("Confirm Reward\n\nWould you like to claim %s for %s?", r.Name, common.FormatPoints(r.Cost))
}

// FormatIneligible — текст при нехватке очков.
func FormatIneligible(shortfall int64) string {
	return fmt.Sprintf("Insufficient Points\n\nYou need %s more %s to claim this reward.",
		common.FormatNumber(shortfall), common.PluralizePoints(shortfall))
}

// FormatSuccess — текст успешного обмена.
func FormatSuccess(r Reward, receipt *Receipt) string {
	text := fmt.Sprintf("✅ Success!\n\nYour reward has been claimed. Check your email for details.\n\n%s %s: %s",
		r.Icon, r.Name, common.FormatPointsDelta(-r.Cost))
	if receipt != nil {
		text += fmt.Sprintf("\nBalance: %s\nReceipt: %s", common.FormatPoints(receipt.BalanceAfter), receipt.ID)
	}
	return text
}

// FormatCancelled — текст после отмены.
func FormatCancelled(r Reward, balance int64) string {
	return fmt.Sprintf("Claim of %s cancelled. Your balance is unchanged: %s.", r.Name, common.FormatPoints(balance))
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string) {
	if err := h.messenger.Edit(ctx, chatID, messageID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("Ошибка редактирования сообщения")
	}
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
