// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Источники данных профиля
const (
	ProfileSourceStatic   = "static"   // Встроенные демо-данные
	ProfileSourcePostgres = "postgres" // Таблицы в PostgreSQL
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную

	// --- Profile data source ---
	// static — демо-данные из приложения, postgres — данные из БД (только чтение)
	ProfileSource string `envconfig:"PROFILE_SOURCE" default:"static"`

	// --- Database ---
	// Нужна только при PROFILE_SOURCE=postgres.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"volunteer"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"volunteer_quest"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Berlin"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	// Пустой хеш = админ-панель выключена
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// --- Sessions ---
	SessionIdleTTL       time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	ClaimConfirmTTL      time.Duration `envconfig:"CLAIM_CONFIRM_TTL" default:"5m"`
	SessionSweepSchedule string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 1m"`

	// --- Streak overlay ---
	StreakOverlayHold time.Duration `envconfig:"STREAK_OVERLAY_HOLD" default:"2s"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureLeaderboardEnabled   bool `envconfig:"FEATURE_LEADERBOARD_ENABLED" default:"true"`
	FeatureCertificatesEnabled  bool `envconfig:"FEATURE_CERTIFICATES_ENABLED" default:"true"`
	FeatureStreakOverlayEnabled bool `envconfig:"FEATURE_STREAK_OVERLAY_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// UsesPostgres — нужен ли пул соединений к БД.
func (c *Config) UsesPostgres() bool {
	return c.ProfileSource == ProfileSourcePostgres
}

// IsAdmin проверяет, входит ли userID в ADMIN_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	switch c.ProfileSource {
	case ProfileSourceStatic:
	case ProfileSourcePostgres:
		if c.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD обязателен при PROFILE_SOURCE=postgres")
		}
		if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
		}
	default:
		return fmt.Errorf("неизвестный PROFILE_SOURCE %q (static|postgres)", c.ProfileSource)
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.SessionIdleTTL <= 0 || c.ClaimConfirmTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL и CLAIM_CONFIRM_TTL должны быть > 0")
	}
	if c.StreakOverlayHold < 0 {
		return fmt.Errorf("STREAK_OVERLAY_HOLD не может быть отрицательным")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("некорректные RATE_LIMIT_REQUESTS/RATE_LIMIT_WINDOW")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
