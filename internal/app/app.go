// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: выбирает источник данных (демо или PostgreSQL),
// создаёт сервисы, обработчики, фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"github.com/jishnunambiarr/VolunteerQuest/internal/bot"
	"github.com/jishnunambiarr/VolunteerQuest/internal/bot/filters"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
	"github.com/jishnunambiarr/VolunteerQuest/internal/db/postgres"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/admin"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/certificates"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/leaderboard"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/opportunities"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/profile"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/rewards"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/streak"
	"github.com/jishnunambiarr/VolunteerQuest/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool // nil при PROFILE_SOURCE=static
	BotAPI    *telego.Bot
}

// sources — репозитории всех фич для выбранного режима.
type sources struct {
	profiles      profile.Source
	catalog       rewards.CatalogSource
	volunteers    leaderboard.Source
	opportunities opportunities.Source
	adminStore    admin.Store
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Источник данных ===
	var pool *pgxpool.Pool
	src := staticSources()
	if cfg.UsesPostgres() {
		var err error
		pool, err = postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка миграций: %w", err)
		}
		src = postgresSources(pool)
	}
	log.WithField("profile_source", cfg.ProfileSource).Info("Источник данных выбран")

	// === 2. Telegram Bot API ===
	botAPI, err := telego.NewBot(cfg.TelegramBotToken, telego.WithLogger(log.WithField("component", "telego")))
	if err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	me, err := botAPI.GetMe(ctx)
	if err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ошибка авторизации в Telegram: %w", err)
	}
	log.Infof("Авторизован как @%s", me.Username)

	messenger := bot.NewTelegoMessenger(botAPI)

	// === 3. Сервисы ===
	profileService := profile.NewService(src.profiles)
	rewardsService := rewards.NewService(src.catalog, profileService, cfg)
	leaderboardService := leaderboard.NewService(src.volunteers)
	opportunitiesService := opportunities.NewService(src.opportunities)
	certificatesService := certificates.NewService(profileService, cfg)
	adminService := admin.NewService(src.adminStore, cfg)

	// Битый каталог (дубли id, отрицательная цена) = бот не стартует
	catalog, err := rewardsService.LoadCatalog(ctx)
	if err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ошибка каталога наград: %w", err)
	}
	log.WithField("rewards", catalog.Len()).Info("Каталог наград загружен")

	// === 4. Обработчики ===
	var overlay profile.OverlayPlayer
	if cfg.FeatureStreakOverlayEnabled {
		overlay = streak.NewPlayer(messenger, cfg)
	}

	rewardsHandler := rewards.NewHandler(rewardsService, messenger)
	profileHandler := profile.NewHandler(profileService, rewardsService, overlay, messenger)
	leaderboardHandler := leaderboard.NewHandler(leaderboardService, messenger)
	opportunitiesHandler := opportunities.NewHandler(opportunitiesService, messenger)
	certificatesHandler := certificates.NewHandler(certificatesService, messenger)
	adminHandler := admin.NewHandler(adminService, rewardsService, messenger)

	// === 5. Фильтры ===
	chatFilter := filters.NewChatFilter(messenger)

	// === 6. Собираем бота ===
	b := bot.New(
		botAPI, cfg, messenger,
		rewardsHandler,
		profileHandler,
		leaderboardHandler,
		opportunitiesHandler,
		certificatesHandler,
		adminHandler,
		chatFilter,
	)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(rewardsService, cfg)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	closePool(a.DB)
}

func staticSources() sources {
	return sources{
		profiles:      profile.NewStaticRepository(),
		catalog:       rewards.NewStaticRepository(),
		volunteers:    leaderboard.NewStaticRepository(),
		opportunities: opportunities.NewStaticRepository(),
		adminStore:    admin.NewMemoryStore(),
	}
}

func postgresSources(pool *pgxpool.Pool) sources {
	return sources{
		profiles:      profile.NewRepository(pool),
		catalog:       rewards.NewRepository(pool),
		volunteers:    leaderboard.NewRepository(pool),
		opportunities: opportunities.NewRepository(pool),
		adminStore:    admin.NewRepository(pool),
	}
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
