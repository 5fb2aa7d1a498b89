// Package bot — messenger.go реализует common.Messenger поверх telego.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// TelegoMessenger отправляет сообщения через Telegram Bot API.
type TelegoMessenger struct {
	api *telego.Bot
}

var _ common.Messenger = (*TelegoMessenger)(nil)

// NewTelegoMessenger создаёт Messenger для бота.
func NewTelegoMessenger(api *telego.Bot) *TelegoMessenger {
	return &TelegoMessenger{api: api}
}

func (m *TelegoMessenger) Send(ctx context.Context, chatID int64, text string) (int, error) {
	return m.SendWithButtons(ctx, chatID, text, nil)
}

func (m *TelegoMessenger) SendWithButtons(ctx context.Context, chatID int64, text string, rows [][]common.Button) (int, error) {
	params := tu.Message(tu.ID(chatID), text)
	if len(rows) > 0 {
		params = params.WithReplyMarkup(InlineKeyboard(rows))
	}
	msg, err := m.api.SendMessage(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("sendMessage: %w", err)
	}
	return msg.MessageID, nil
}

// Edit заменяет текст; ReplyMarkup не передаём, поэтому кнопки исчезают.
func (m *TelegoMessenger) Edit(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := m.api.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("editMessageText: %w", err)
	}
	return nil
}

func (m *TelegoMessenger) Delete(ctx context.Context, chatID int64, messageID int) error {
	if err := m.api.DeleteMessage(ctx, tu.Delete(tu.ID(chatID), messageID)); err != nil {
		return fmt.Errorf("deleteMessage: %w", err)
	}
	return nil
}

func (m *TelegoMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	params := tu.CallbackQuery(callbackID)
	if text != "" {
		params = params.WithText(text)
	}
	if err := m.api.AnswerCallbackQuery(ctx, params); err != nil {
		return fmt.Errorf("answerCallbackQuery: %w", err)
	}
	return nil
}

// InlineKeyboard переводит кнопки фич в разметку Telegram.
func InlineKeyboard(rows [][]common.Button) *telego.InlineKeyboardMarkup {
	keyboard := make([][]telego.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tu.InlineKeyboardButton(b.Text).WithCallbackData(b.Data))
		}
		keyboard = append(keyboard, tu.InlineKeyboardRow(buttons...))
	}
	return tu.InlineKeyboard(keyboard...)
}
