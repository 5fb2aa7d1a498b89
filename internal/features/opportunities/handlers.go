// Package opportunities — handlers.go обрабатывает !discover [запрос],
// !opportunity <id> и кнопку «Learn more».
package opportunities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// CallbackDetail — префикс кнопки «Learn more»: opportunity:<id>.
const CallbackDetail = "opportunity"

// Handler обрабатывает команды возможностей.
type Handler struct {
	service   *Service
	messenger common.Messenger
}

// NewHandler создаёт обработчик возможностей.
func NewHandler(service *Service, messenger common.Messenger) *Handler {
	return &Handler{service: service, messenger: messenger}
}

// ParseCallback разбирает "opportunity:<id>".
func ParseCallback(data string) (id string, ok bool) {
	prefix, id, found := strings.Cut(data, ":")
	if !found || prefix != CallbackDetail || id == "" {
		return "", false
	}
	return id, true
}

// HandleDiscover обрабатывает !discover [запрос]: список карточек с кнопками.
func (h *Handler) HandleDiscover(ctx context.Context, chatID int64, args []string) {
	query := strings.Join(args, " ")
	list, err := h.service.Search(ctx, query)
	if err != nil {
		log.WithError(err).Error("Ошибка поиска возможностей")
		h.send(ctx, chatID, "❌ Could not load opportunities")
		return
	}

	if len(list) == 0 {
		h.send(ctx, chatID, fmt.Sprintf("🔍 No opportunities match %q", query))
		return
	}

	rows := make([][]common.Button, 0, len(list))
	for _, o := range list {
		rows = append(rows, []common.Button{{
			Text: "Learn more: " + o.Title,
			Data: CallbackDetail + ":" + o.ID,
		}})
	}
	if _, err := h.messenger.SendWithButtons(ctx, chatID, FormatList(list, query), rows); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки списка возможностей")
	}
}

// HandleOpportunity обрабатывает !opportunity <id>.
func (h *Handler) HandleOpportunity(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		h.send(ctx, chatID, "❌ Usage: !opportunity <id>\nSee !discover for the list")
		return
	}
	h.sendDetail(ctx, chatID, args[0])
}

// HandleDetailButton обрабатывает кнопку opportunity:<id>.
func (h *Handler) HandleDetailButton(ctx context.Context, chatID int64, callbackID, id string) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, ""); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
	h.sendDetail(ctx, chatID, id)
}

func (h *Handler) sendDetail(ctx context.Context, chatID int64, id string) {
	o, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrOpportunityNotFound) {
			h.send(ctx, chatID, "❌ Opportunity not found. See !discover for the list")
			return
		}
		log.WithError(err).WithField("opportunity_id", id).Error("Ошибка получения возможности")
		h.send(ctx, chatID, "❌ Could not load the opportunity")
		return
	}
	h.send(ctx, chatID, FormatDetail(o))
}

// FormatList рендерит список карточек.
func FormatList(list []Opportunity, query string) string {
	var sb strings.Builder
	if strings.TrimSpace(query) == "" {
		sb.WriteString("🔍 Opportunities\n")
	} else {
		fmt.Fprintf(&sb, "🔍 Opportunities matching %q\n", query)
	}
	for _, o := range list {
		fmt.Fprintf(&sb, "\n%s. %s\n%s\n⏱ %s · 📍 %s\n", o.ID, o.Title, o.Organization, o.Duration, o.Location)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatDetail рендерит подробную карточку.
func FormatDetail(o Opportunity) string {
	return fmt.Sprintf(
		"%s\n%s\n\n⏱ %s\n📍 %s\n\n"+
			"Description\n%s\n\n"+
			"Requirements\n%s\n\n"+
			"Your Impact\n%s",
		o.Title, o.Organization, o.Duration, o.Location,
		o.Description, o.Requirements, o.Impact,
	)
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
