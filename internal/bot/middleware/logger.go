// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	"unicode/utf8"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
)

// maxLoggedText — сколько символов текста попадает в лог.
const maxLoggedText = 50

// RedactedText пишется в лог вместо текста с паролем.
const RedactedText = "[скрыто]"

// LogUpdate логирует входящее сообщение или нажатие кнопки.
// Записывает: update_id, user_id, chat_id, username, текст (первые 50 символов).
// redact заменяет текст сообщения на RedactedText.
func LogUpdate(update telego.Update, redact bool) {
	switch {
	case update.Message != nil:
		msg := update.Message
		text := truncate(msg.Text)
		if redact {
			text = RedactedText
		}
		fields := log.Fields{
			"update_id": update.UpdateID,
			"chat_id":   msg.Chat.ID,
			"chat_type": msg.Chat.Type,
			"text":      text,
		}
		if msg.From != nil {
			fields["user_id"] = msg.From.ID
			fields["username"] = msg.From.Username
		}
		log.WithFields(fields).Debug("Входящее сообщение")

	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		log.WithFields(log.Fields{
			"update_id": update.UpdateID,
			"user_id":   q.From.ID,
			"username":  q.From.Username,
			"data":      q.Data,
		}).Debug("Нажата кнопка")
	}
}

// truncate обрезает текст по символам, а не байтам.
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxLoggedText {
		return text
	}
	return string([]rune(text)[:maxLoggedText]) + "..."
}
