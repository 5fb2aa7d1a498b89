// Package streak — service.go проигрывает оверлей в чате:
// отправляет сообщение и удаляет его после паузы.
package streak

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
)

// hideTimeout — сколько ждём удаления, если контекст уже отменён.
const hideTimeout = 5 * time.Second

// Player проигрывает оверлей стрика.
type Player struct {
	messenger common.Messenger
	hold      time.Duration
	after     func(time.Duration) <-chan time.Time
}

// NewPlayer создаёт проигрыватель с паузой STREAK_OVERLAY_HOLD.
func NewPlayer(messenger common.Messenger, cfg *config.Config) *Player {
	return &Player{
		messenger: messenger,
		hold:      cfg.StreakOverlayHold,
		after:     time.After,
	}
}

// Play показывает оверлей для серии из weeks недель и блокируется до его удаления.
// При отмене ctx оверлей прячется сразу, Play возвращает ctx.Err().
// Нулевая серия не показывается.
func (p *Player) Play(ctx context.Context, chatID int64, weeks int) error {
	if weeks <= 0 {
		return nil
	}

	messageID := 0
	for _, step := range Sequence(p.hold) {
		if step.Wait > 0 {
			select {
			case <-ctx.Done():
				p.hide(chatID, messageID)
				return ctx.Err()
			case <-p.after(step.Wait):
			}
		}

		switch step.Action {
		case ActionShow:
			id, err := p.messenger.Send(ctx, chatID, FormatOverlay(weeks))
			if err != nil {
				return err
			}
			messageID = id
		case ActionHide:
			if err := p.messenger.Delete(ctx, chatID, messageID); err != nil {
				return err
			}
			messageID = 0
		}
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"weeks":   weeks,
	}).Debug("Оверлей стрика показан")
	return nil
}

// hide удаляет оверлей, когда основной контекст уже отменён.
func (p *Player) hide(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), hideTimeout)
	defer cancel()
	if err := p.messenger.Delete(ctx, chatID, messageID); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("Не удалось удалить оверлей стрика")
	}
}
