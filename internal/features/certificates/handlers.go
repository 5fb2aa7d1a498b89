// Package certificates — handlers.go обрабатывает !certificates,
// !certificate <год> и кнопку «Get Certificate».
package certificates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// CallbackGet — префикс кнопки «Get Certificate»: certificate:<год>.
const CallbackGet = "certificate"

// Handler обрабатывает команды сертификатов.
type Handler struct {
	service   *Service
	messenger common.Messenger
}

// NewHandler создаёт обработчик сертификатов.
func NewHandler(service *Service, messenger common.Messenger) *Handler {
	return &Handler{service: service, messenger: messenger}
}

// ParseCallback разбирает "certificate:<год>".
func ParseCallback(data string) (year int, ok bool) {
	prefix, arg, found := strings.Cut(data, ":")
	if !found || prefix != CallbackGet {
		return 0, false
	}
	year, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	return year, true
}

// HandleCertificates обрабатывает !certificates: годы с часами и кнопки.
func (h *Handler) HandleCertificates(ctx context.Context, chatID, userID int64) {
	list, err := h.service.List(ctx, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	if len(list) == 0 {
		h.send(ctx, chatID, "📜 No volunteer hours recorded yet")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Your Volunteer Certificates\n")
	rows := make([][]common.Button, 0, len(list))
	for _, c := range list {
		fmt.Fprintf(&sb, "\n%d: %s", c.Year, common.FormatHours(c.Hours))
		rows = append(rows, []common.Button{{
			Text: fmt.Sprintf("Get Certificate %d", c.Year),
			Data: fmt.Sprintf("%s:%d", CallbackGet, c.Year),
		}})
	}
	if _, err := h.messenger.SendWithButtons(ctx, chatID, sb.String(), rows); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки списка сертификатов")
	}
}

// HandleCertificate обрабатывает !certificate <год>.
func (h *Handler) HandleCertificate(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) < 1 {
		h.send(ctx, chatID, "❌ Usage: !certificate <year>\nSee !certificates for the list")
		return
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		h.send(ctx, chatID, "❌ Year must be a number, e.g. !certificate 2024")
		return
	}
	h.sendCertificate(ctx, chatID, userID, year)
}

// HandleGetButton обрабатывает кнопку certificate:<год>.
func (h *Handler) HandleGetButton(ctx context.Context, chatID, userID int64, callbackID string, year int) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, fmt.Sprintf("Certificate for %d has been downloaded", year)); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
	h.sendCertificate(ctx, chatID, userID, year)
}

func (h *Handler) sendCertificate(ctx context.Context, chatID, userID int64, year int) {
	c, err := h.service.Get(ctx, userID, year)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	text := c.Text(h.service.Location()) + "\n\nAdd to LinkedIn: " + c.LinkedInURL()
	h.send(ctx, chatID, text)

	log.WithFields(log.Fields{
		"user_id": userID,
		"year":    year,
	}).Info("Сертификат выдан")
}

func (h *Handler) replyError(ctx context.Context, chatID, userID int64, err error) {
	switch {
	case errors.Is(err, common.ErrCertificateNotFound):
		h.send(ctx, chatID, "❌ No volunteer hours recorded for that year. See !certificates")
	case errors.Is(err, common.ErrProfileNotFound):
		h.send(ctx, chatID, "❌ Your volunteer profile was not found")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения сертификата")
		h.send(ctx, chatID, "❌ Could not load certificates")
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
