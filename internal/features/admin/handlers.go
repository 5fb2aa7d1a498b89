// Package admin — handlers.go обрабатывает админ-команды в личных сообщениях.
// Поток: /login → пароль → !sessions / !endsession <user_id> / !logout.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/rewards"
)

// SessionManager — сессии наград, которыми управляет админ (rewards.Service).
type SessionManager interface {
	ActiveSessions() []rewards.SessionInfo
	EndSession(userID int64) bool
}

// Handler обрабатывает админ-команды.
type Handler struct {
	service   *Service
	sessions  SessionManager
	messenger common.Messenger
}

// NewHandler создаёт обработчик админки.
func NewHandler(service *Service, sessions SessionManager, messenger common.Messenger) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		messenger: messenger,
	}
}

// HandleAdminMessage вызывается для каждого сообщения в DM до разбора команд.
// Возвращает true, если сообщение было паролем и поглощено диалогом входа.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.AwaitingPassword(userID) {
		return false
	}
	h.handlePasswordInput(ctx, chatID, userID, text)
	return true
}

// AwaitingPassword — ждёт ли бот от пользователя пароль следующим сообщением.
func (h *Handler) AwaitingPassword(userID int64) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}
	state := h.service.GetState(userID)
	return state != nil && state.State == StateAwaitingPassword
}

// HandleLogin обрабатывает /login [пароль].
// Без пароля бот спрашивает его следующим сообщением.
func (h *Handler) HandleLogin(ctx context.Context, chatID, userID int64, args []string) {
	if !h.service.IsAdmin(userID) {
		log.WithField("user_id", userID).Warn("Попытка входа в админку без прав")
		return
	}
	if !h.service.Enabled() {
		h.send(ctx, chatID, "🔒 Admin commands are disabled")
		return
	}
	if len(args) == 0 {
		h.service.SetState(userID, StateAwaitingPassword)
		h.send(ctx, chatID, "🔐 Enter the admin password:")
		return
	}
	h.handlePasswordInput(ctx, chatID, userID, strings.Join(args, " "))
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID, userID int64, password string) {
	h.service.ClearState(userID)

	err := h.service.VerifyPassword(ctx, userID, strings.TrimSpace(password))
	switch {
	case err == nil:
		h.send(ctx, chatID, "✅ Logged in. Commands: !sessions, !endsession <user_id>, !logout")
	case errors.Is(err, common.ErrWrongPassword):
		h.send(ctx, chatID, "❌ Wrong password")
	case errors.Is(err, common.ErrTooManyAttempts):
		h.send(ctx, chatID, "⛔ Too many attempts, try again in an hour")
	case errors.Is(err, common.ErrAdminDisabled):
		h.send(ctx, chatID, "🔒 Admin commands are disabled")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка аутентификации")
		h.send(ctx, chatID, "❌ Login failed")
	}
}

// HandleSessions обрабатывает !sessions — открытые сессии наград.
func (h *Handler) HandleSessions(ctx context.Context, chatID, userID int64) {
	if !h.requireSession(ctx, chatID, userID) {
		return
	}
	h.send(ctx, chatID, FormatSessions(h.sessions.ActiveSessions(), h.service.now()))
}

// HandleEndSession обрабатывает !endsession <user_id>.
func (h *Handler) HandleEndSession(ctx context.Context, chatID, userID int64, args []string) {
	if !h.requireSession(ctx, chatID, userID) {
		return
	}
	if len(args) < 1 {
		h.send(ctx, chatID, "❌ Usage: !endsession <user_id>")
		return
	}
	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.send(ctx, chatID, "❌ user_id must be a number")
		return
	}

	if !h.sessions.EndSession(target) {
		h.send(ctx, chatID, fmt.Sprintf("No active session for %d", target))
		return
	}

	log.WithFields(log.Fields{
		"admin_id": userID,
		"user_id":  target,
	}).Info("Админ завершил сессию")
	h.send(ctx, chatID, fmt.Sprintf("✅ Session of %d ended", target))
}

// HandleLogout обрабатывает !logout.
func (h *Handler) HandleLogout(ctx context.Context, chatID, userID int64) {
	if !h.service.IsAdmin(userID) {
		return
	}
	if err := h.service.Logout(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка выхода")
	}
	h.send(ctx, chatID, "👋 Logged out")
}

// requireSession — только админ из ADMIN_IDS с активной сессией.
// Не-админам бот не отвечает.
func (h *Handler) requireSession(ctx context.Context, chatID, userID int64) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}
	if !h.service.HasActiveSession(ctx, userID) {
		h.send(ctx, chatID, "🔐 Log in first: /login")
		return false
	}
	return true
}

// FormatSessions рендерит список сессий наград.
func FormatSessions(list []rewards.SessionInfo, now time.Time) string {
	if len(list) == 0 {
		return "No active sessions"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Active sessions: %d\n", len(list))
	for _, s := range list {
		idle := now.Sub(s.LastSeen).Truncate(time.Second)
		fmt.Fprintf(&sb, "\n%d: %s, pending %d, claimed %d, idle %s",
			s.UserID, common.FormatPoints(s.Balance), s.Pending, s.Claimed, idle)
	}
	return sb.String()
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
