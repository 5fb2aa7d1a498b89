// Package leaderboard — handlers.go обрабатывает команду !leaderboard.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Handler обрабатывает команды таблицы лидеров.
type Handler struct {
	service   *Service
	messenger common.Messenger
}

// NewHandler создаёт обработчик таблицы лидеров.
func NewHandler(service *Service, messenger common.Messenger) *Handler {
	return &Handler{service: service, messenger: messenger}
}

// HandleLeaderboard обрабатывает !leaderboard.
//
// Формат ответа:
//
//	🏆 Top Volunteers
//	This Month
//
//	🥇 Rawbin: 156h
//	🥈 Waggy Rogers: 142h
//	🥉 Surgil Hawkins: 135h
//
//	4. Fake the dog: 128 hours
func (h *Handler) HandleLeaderboard(ctx context.Context, chatID int64) {
	board, err := h.service.Board(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения таблицы лидеров")
		h.send(ctx, chatID, "❌ Could not load the leaderboard")
		return
	}
	h.send(ctx, chatID, FormatBoard(board))
}

// FormatBoard рендерит таблицу лидеров.
func FormatBoard(b Board) string {
	if len(b.Podium) == 0 {
		return "🏆 Top Volunteers\n\nNo volunteers yet"
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top Volunteers\nThis Month\n")

	sb.WriteString("\n")
	for _, e := range b.Podium {
		fmt.Fprintf(&sb, "%s %s: %dh\n", Medal(e.Rank), e.Name, e.Hours)
	}

	if len(b.Rest) > 0 {
		sb.WriteString("\n")
		for _, e := range b.Rest {
			fmt.Fprintf(&sb, "%d. %s: %s\n", e.Rank, e.Name, common.FormatHours(e.Hours))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
