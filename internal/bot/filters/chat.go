// Package filters решает, какие апдейты бот обрабатывает.
package filters

import (
	"context"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// ChatFilter пропускает только личные чаты: баланс и подтверждения
// принадлежат одному пользователю.
type ChatFilter struct {
	messenger common.Messenger
}

// NewChatFilter создаёт фильтр. messenger нужен для ответа в группах.
func NewChatFilter(messenger common.Messenger) *ChatFilter {
	return &ChatFilter{messenger: messenger}
}

// CheckAccess — можно ли обработать сообщение из chat от from.
// Командам из групп бот один раз отвечает, что работает только в личке.
func (f *ChatFilter) CheckAccess(ctx context.Context, chat telego.Chat, from *telego.User, isCommand bool) bool {
	if from == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   chat.ID,
			"chat_type": chat.Type,
		}).Warn("nil message.From (service/channel message?)")
		return false
	}
	if from.IsBot {
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   chat.ID,
		"chat_type": chat.Type,
		"user_id":   from.ID,
	})

	if chat.Type == telego.ChatTypePrivate {
		return true
	}

	logger.Debug("deny: not a private chat")
	if isCommand && f.messenger != nil {
		if _, err := f.messenger.Send(ctx, chat.ID, "🔒 Message me privately to use VolunteerQuest"); err != nil {
			logger.WithError(err).Warn("failed to send deny message")
		}
	}
	return false
}
