// Package common — messenger.go описывает, как фичи отправляют ответы.
// Фичи не знают про Telegram SDK: им нужен только этот интерфейс.
// Реализация для Telegram — bot.TelegoMessenger.
package common

import "context"

// Button — кнопка inline-клавиатуры.
// Data уходит в callback при нажатии (не длиннее 64 байт по ограничению Telegram).
type Button struct {
	Text string
	Data string
}

// Messenger отправляет, редактирует и удаляет сообщения в чате.
type Messenger interface {
	// Send отправляет текст и возвращает ID нового сообщения.
	Send(ctx context.Context, chatID int64, text string) (int, error)
	// SendWithButtons отправляет текст с inline-клавиатурой (строки кнопок).
	SendWithButtons(ctx context.Context, chatID int64, text string, rows [][]Button) (int, error)
	// Edit заменяет текст сообщения и убирает клавиатуру.
	Edit(ctx context.Context, chatID int64, messageID int, text string) error
	// Delete удаляет сообщение.
	Delete(ctx context.Context, chatID int64, messageID int) error
	// AnswerCallback закрывает «часики» на нажатой кнопке.
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
