// Package bot содержит главный модуль бота: запуск polling и маршрутизацию
// команд и нажатий кнопок к обработчикам фич.
package bot

import (
	"context"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/bot/filters"
	"github.com/jishnunambiarr/VolunteerQuest/internal/bot/middleware"
	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/admin"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/certificates"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/leaderboard"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/opportunities"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/profile"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/rewards"
)

// HelpText — ответ на /start и !help.
const HelpText = "👋 Welcome to VolunteerQuest!\n\n" +
	"🔍 !discover [search] — volunteer opportunities\n" +
	"📋 !opportunity <id> — opportunity details\n" +
	"🏆 !leaderboard — top volunteers\n" +
	"👤 !profile — your stats\n" +
	"⭐ !points — your points\n" +
	"🎁 !rewards — reward catalog\n" +
	"🎁 !claim <id> — claim a reward\n" +
	"📜 !certificates — yearly certificates\n" +
	"📜 !certificate <year> — one certificate"

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api       *telego.Bot
	cfg       *config.Config
	messenger common.Messenger

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	rewardsHandler       *rewards.Handler
	profileHandler       *profile.Handler
	leaderboardHandler   *leaderboard.Handler
	opportunitiesHandler *opportunities.Handler
	certificatesHandler  *certificates.Handler
	adminHandler         *admin.Handler

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *telego.Bot,
	cfg *config.Config,
	messenger common.Messenger,
	rewardsHandler *rewards.Handler,
	profileHandler *profile.Handler,
	leaderboardHandler *leaderboard.Handler,
	opportunitiesHandler *opportunities.Handler,
	certificatesHandler *certificates.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:                  api,
		cfg:                  cfg,
		messenger:            messenger,
		chatFilter:           chatFilter,
		rateLimiter:          middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		rewardsHandler:       rewardsHandler,
		profileHandler:       profileHandler,
		leaderboardHandler:   leaderboardHandler,
		opportunitiesHandler: opportunitiesHandler,
		certificatesHandler:  certificatesHandler,
		adminHandler:         adminHandler,
		parser:               NewCommandParser(),
		inflight:             make(chan struct{}, maxInFlight),
	}
}

// Start запускает long polling и блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) error {
	defer b.rateLimiter.Close()

	updates, err := b.api.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        b.cfg.BotUpdateTimeoutSeconds,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"max_inflight": cap(b.inflight),
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			return nil

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return nil
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd telego.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update telego.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	middleware.LogUpdate(update, b.isSensitive(update))

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// isSensitive — может ли текст сообщения содержать пароль админки:
// /login с аргументом или ответ на запрос пароля.
func (b *Bot) isSensitive(update telego.Update) bool {
	msg := update.Message
	if msg == nil {
		return false
	}
	if cmd, _, ok := b.parser.ParseCommand(msg.Text); ok && cmd == "login" {
		return true
	}
	return msg.From != nil && b.adminHandler.AwaitingPassword(msg.From.ID)
}

// handleMessage обрабатывает текстовое сообщение.
func (b *Bot) handleMessage(ctx context.Context, message *telego.Message) {
	if message.Text == "" {
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)

	// Только личные чаты
	if !b.chatFilter.CheckAccess(ctx, message.Chat, message.From, isCommand) {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	if !b.rateLimiter.Allow(userID) {
		log.WithField("user_id", userID).Debug("rate limited")
		return
	}

	// Сначала диалог входа админа: следующее сообщение может быть паролем
	if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
		return
	}

	if !isCommand {
		b.sendMessage(ctx, chatID, "Type !help to see what I can do")
		return
	}

	fields := log.Fields{"cmd": cmd}
	if cmd != "login" {
		fields["args"] = args
	}
	log.WithFields(fields).Debug("parsed command")

	b.routeCommand(ctx, chatID, userID, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	switch cmd {
	case "start", "help":
		b.sendMessage(ctx, chatID, HelpText)

	case "discover", "explore", "search":
		b.opportunitiesHandler.HandleDiscover(ctx, chatID, args)

	case "opportunity":
		b.opportunitiesHandler.HandleOpportunity(ctx, chatID, args)

	case "leaderboard", "top":
		if b.cfg.FeatureLeaderboardEnabled {
			b.leaderboardHandler.HandleLeaderboard(ctx, chatID)
		} else {
			b.sendMessage(ctx, chatID, "🏆 The leaderboard is temporarily disabled")
		}

	case "profile", "me":
		b.profileHandler.HandleProfile(ctx, chatID, userID)

	case "points", "balance":
		b.rewardsHandler.HandlePoints(ctx, chatID, userID)

	case "rewards":
		b.rewardsHandler.HandleRewards(ctx, chatID, userID)

	case "claim":
		b.rewardsHandler.HandleClaim(ctx, chatID, userID, args)

	case "certificates", "certificate":
		if !b.cfg.FeatureCertificatesEnabled {
			b.sendMessage(ctx, chatID, "📜 Certificates are temporarily disabled")
			return
		}
		if cmd == "certificates" {
			b.certificatesHandler.HandleCertificates(ctx, chatID, userID)
		} else {
			b.certificatesHandler.HandleCertificate(ctx, chatID, userID, args)
		}

	case "login":
		b.adminHandler.HandleLogin(ctx, chatID, userID, args)

	case "sessions":
		b.adminHandler.HandleSessions(ctx, chatID, userID)

	case "endsession":
		b.adminHandler.HandleEndSession(ctx, chatID, userID, args)

	case "logout":
		b.adminHandler.HandleLogout(ctx, chatID, userID)

	default:
		b.sendMessage(ctx, chatID, "❓ Unknown command. Type !help")
	}
}

// handleCallback обрабатывает нажатие inline-кнопки.
func (b *Bot) handleCallback(ctx context.Context, q *telego.CallbackQuery) {
	// Сообщение с кнопкой слишком старое, Telegram его не прислал
	if q.Message == nil {
		b.answer(ctx, q.ID, "This button has expired")
		return
	}

	chat := q.Message.GetChat()
	if !b.chatFilter.CheckAccess(ctx, chat, &q.From, false) {
		b.answer(ctx, q.ID, "")
		return
	}
	if !b.rateLimiter.Allow(q.From.ID) {
		b.answer(ctx, q.ID, "Slow down a little")
		return
	}

	chatID := chat.ID
	messageID := q.Message.GetMessageID()
	userID := q.From.ID

	if action, arg, ok := rewards.ParseCallback(q.Data); ok {
		switch action {
		case rewards.CallbackClaim:
			b.rewardsHandler.HandleClaimButton(ctx, chatID, userID, q.ID, arg)
		case rewards.CallbackConfirm:
			b.rewardsHandler.HandleConfirm(ctx, chatID, messageID, userID, q.ID, arg)
		case rewards.CallbackCancel:
			b.rewardsHandler.HandleCancel(ctx, chatID, messageID, userID, q.ID, arg)
		}
		return
	}

	if id, ok := opportunities.ParseCallback(q.Data); ok {
		b.opportunitiesHandler.HandleDetailButton(ctx, chatID, q.ID, id)
		return
	}

	if year, ok := certificates.ParseCallback(q.Data); ok {
		if !b.cfg.FeatureCertificatesEnabled {
			b.answer(ctx, q.ID, "Certificates are temporarily disabled")
			return
		}
		b.certificatesHandler.HandleGetButton(ctx, chatID, userID, q.ID, year)
		return
	}

	log.WithField("data", q.Data).Warn("Неизвестная кнопка")
	b.answer(ctx, q.ID, "Unknown button")
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	if _, err := b.messenger.Send(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, text string) {
	if err := b.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
