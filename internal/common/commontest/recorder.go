// Package commontest содержит подделки общих интерфейсов для тестов фич.
package commontest

import (
	"context"
	"sync"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Sent — одно отправленное сообщение.
type Sent struct {
	ChatID    int64
	MessageID int
	Text      string
	Rows      [][]common.Button
}

// Edited — одно отредактированное сообщение.
type Edited struct {
	ChatID    int64
	MessageID int
	Text      string
}

// Recorder запоминает всё, что фичи отправили в чат.
type Recorder struct {
	mu       sync.Mutex
	nextID   int
	Sent     []Sent
	Edited   []Edited
	Deleted  []int
	Answered []string // ID callback-запросов
	Answers  []string // тексты ответов на них
	// Err, если задан, возвращается из всех методов.
	Err error
}

var _ common.Messenger = (*Recorder)(nil)

func (r *Recorder) Send(ctx context.Context, chatID int64, text string) (int, error) {
	return r.SendWithButtons(ctx, chatID, text, nil)
}

func (r *Recorder) SendWithButtons(_ context.Context, chatID int64, text string, rows [][]common.Button) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	r.nextID++
	r.Sent = append(r.Sent, Sent{ChatID: chatID, MessageID: r.nextID, Text: text, Rows: rows})
	return r.nextID, nil
}

func (r *Recorder) Edit(_ context.Context, chatID int64, messageID int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Edited = append(r.Edited, Edited{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (r *Recorder) Delete(_ context.Context, _ int64, messageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Deleted = append(r.Deleted, messageID)
	return nil
}

func (r *Recorder) AnswerCallback(_ context.Context, callbackID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Answered = append(r.Answered, callbackID)
	r.Answers = append(r.Answers, text)
	return nil
}

// LastSent возвращает последнее отправленное сообщение.
func (r *Recorder) LastSent() (Sent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return Sent{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}

// LastEdited возвращает последнее отредактированное сообщение.
func (r *Recorder) LastEdited() (Edited, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Edited) == 0 {
		return Edited{}, false
	}
	return r.Edited[len(r.Edited)-1], true
}

// DeletedIDs возвращает копию удалённых ID.
func (r *Recorder) DeletedIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.Deleted))
	copy(out, r.Deleted)
	return out
}
