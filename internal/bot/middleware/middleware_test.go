package middleware

import (
	"strings"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *time.Time) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(limit, window)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl, now := newTestLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(1), "request %d", i)
		*now = now.Add(10 * time.Second)
	}
	assert.False(t, rl.Allow(1))
	// Другой пользователь считается отдельно
	assert.True(t, rl.Allow(2))

	// Первый запрос был 30 секунд назад + 31 секунда → вышел из окна
	*now = now.Add(31 * time.Second)
	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, now := newTestLimiter(5, time.Minute)
	defer rl.Close()

	rl.Allow(1)
	rl.Allow(2)
	assert.Equal(t, 2, rl.Tracked())

	*now = now.Add(30 * time.Second)
	rl.Allow(2)
	*now = now.Add(31 * time.Second)
	rl.Cleanup()
	assert.Equal(t, 1, rl.Tracked())

	*now = now.Add(time.Minute)
	rl.Cleanup()
	assert.Zero(t, rl.Tracked())
}

func TestRecoverFromPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer RecoverFromPanic(7)
		panic("boom")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := strings.Repeat("я", 60)
	got := truncate(long)
	assert.Equal(t, strings.Repeat("я", 50)+"...", got)
}

func TestLogUpdateRedactsText(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	update := telego.Update{
		UpdateID: 3,
		Message: &telego.Message{
			Chat: telego.Chat{ID: 1, Type: telego.ChatTypePrivate},
			From: &telego.User{ID: 1},
			Text: "/login hunter2",
		},
	}

	LogUpdate(update, true)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, RedactedText, entry.Data["text"])

	LogUpdate(update, false)
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "/login hunter2", entry.Data["text"])
}
