// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает очистку неактивных сессий наград.
package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
)

// Sweeper закрывает простаивающие сессии и просроченные подтверждения (rewards.Service).
type Sweeper interface {
	Sweep(now time.Time) (ended int, expired int)
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	loc      *time.Location
}

// NewScheduler создаёт планировщик в часовом поясе APP_TIMEZONE.
func NewScheduler(sweeper Sweeper, cfg *config.Config) *Scheduler {
	loc := common.LoadLocation(cfg.AppTimezone)

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		sweeper:  sweeper,
		schedule: cfg.SessionSweepSchedule,
		loc:      loc,
	}
}

// Start регистрирует задачи и запускает планировщик.
// Неверное расписание в SESSION_SWEEP_SCHEDULE возвращается ошибкой.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("неверное расписание %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"schedule": s.schedule,
		"timezone": s.loc.String(),
	}).Info("Планировщик задач запущен")
	return nil
}

func (s *Scheduler) sweep() {
	ended, expired := s.sweeper.Sweep(time.Now())
	if ended > 0 || expired > 0 {
		log.WithFields(log.Fields{
			"ended":   ended,
			"expired": expired,
		}).Info("[CRON] Очистка сессий наград")
		return
	}
	log.Debug("[CRON] Очистка сессий: нечего закрывать")
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
