package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/bot/filters"
	"github.com/jishnunambiarr/VolunteerQuest/internal/common/commontest"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/admin"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/certificates"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/leaderboard"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/opportunities"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/profile"
	"github.com/jishnunambiarr/VolunteerQuest/internal/features/rewards"
)

const userID int64 = 42

func testConfig() *config.Config {
	return &config.Config{
		AppTimezone:                "UTC",
		BotMaxInflight:             4,
		ClaimConfirmTTL:            5 * time.Minute,
		SessionIdleTTL:             30 * time.Minute,
		RateLimitRequests:          100,
		RateLimitWindow:            time.Minute,
		FeatureLeaderboardEnabled:  true,
		FeatureCertificatesEnabled: true,
	}
}

// newTestBot собирает бота на демо-данных без Telegram API.
func newTestBot(t *testing.T, cfg *config.Config) (*Bot, *commontest.Recorder) {
	t.Helper()
	rec := &commontest.Recorder{}

	profileService := profile.NewService(profile.NewStaticRepository())
	rewardsService := rewards.NewService(rewards.NewStaticRepository(), profileService, cfg)
	_, err := rewardsService.LoadCatalog(context.Background())
	require.NoError(t, err)

	b := New(
		nil,
		cfg,
		rec,
		rewards.NewHandler(rewardsService, rec),
		profile.NewHandler(profileService, rewardsService, nil, rec),
		leaderboard.NewHandler(leaderboard.NewService(leaderboard.NewStaticRepository()), rec),
		opportunities.NewHandler(opportunities.NewService(opportunities.NewStaticRepository()), rec),
		certificates.NewHandler(certificates.NewService(profileService, cfg), rec),
		admin.NewHandler(admin.NewService(admin.NewMemoryStore(), cfg), rewardsService, rec),
		filters.NewChatFilter(rec),
	)
	t.Cleanup(b.rateLimiter.Close)
	return b, rec
}

func privateChat() telego.Chat {
	return telego.Chat{ID: userID, Type: telego.ChatTypePrivate}
}

func textUpdate(text string) telego.Update {
	return telego.Update{
		UpdateID: 1,
		Message: &telego.Message{
			MessageID: 100,
			Chat:      privateChat(),
			From:      &telego.User{ID: userID, FirstName: "Rawbin"},
			Text:      text,
		},
	}
}

func callbackUpdate(data string, messageID int) telego.Update {
	return telego.Update{
		UpdateID: 2,
		CallbackQuery: &telego.CallbackQuery{
			ID:   "cb",
			From: telego.User{ID: userID, FirstName: "Rawbin"},
			Message: &telego.Message{
				MessageID: messageID,
				Chat:      privateChat(),
			},
			Data: data,
		},
	}
}

func lastText(t *testing.T, rec *commontest.Recorder) string {
	t.Helper()
	last, ok := rec.LastSent()
	require.True(t, ok, "nothing was sent")
	return last.Text
}

func TestRouteHelpAndUnknown(t *testing.T) {
	b, rec := newTestBot(t, testConfig())
	ctx := context.Background()

	b.handleUpdate(ctx, textUpdate("/start"))
	assert.Equal(t, HelpText, lastText(t, rec))

	b.handleUpdate(ctx, textUpdate("!dance"))
	assert.Contains(t, lastText(t, rec), "Unknown command")

	b.handleUpdate(ctx, textUpdate("hello there"))
	assert.Contains(t, lastText(t, rec), "!help")
}

func TestRouteFeatureCommands(t *testing.T) {
	b, rec := newTestBot(t, testConfig())
	ctx := context.Background()

	b.handleUpdate(ctx, textUpdate("!points"))
	assert.Equal(t, "⭐ 1,560 Points Available", lastText(t, rec))

	b.handleUpdate(ctx, textUpdate("!leaderboard"))
	assert.True(t, strings.HasPrefix(lastText(t, rec), "🏆 Top Volunteers"))

	b.handleUpdate(ctx, textUpdate("!profile"))
	assert.Contains(t, lastText(t, rec), "Rawbin")

	b.handleUpdate(ctx, textUpdate("!certificate 2024"))
	assert.Contains(t, lastText(t, rec), "2024")
}

func TestFeatureFlagsDisableCommands(t *testing.T) {
	cfg := testConfig()
	cfg.FeatureLeaderboardEnabled = false
	cfg.FeatureCertificatesEnabled = false
	b, rec := newTestBot(t, cfg)
	ctx := context.Background()

	b.handleUpdate(ctx, textUpdate("!leaderboard"))
	assert.Contains(t, lastText(t, rec), "disabled")

	b.handleUpdate(ctx, textUpdate("!certificates"))
	assert.Contains(t, lastText(t, rec), "disabled")

	b.handleUpdate(ctx, callbackUpdate(certificates.CallbackGet+":2024", 5))
	require.NotEmpty(t, rec.Answers)
	assert.Contains(t, rec.Answers[len(rec.Answers)-1], "disabled")
}

func TestClaimConfirmThroughButtons(t *testing.T) {
	b, rec := newTestBot(t, testConfig())
	ctx := context.Background()

	b.handleUpdate(ctx, textUpdate("!claim 1"))
	prompt, ok := rec.LastSent()
	require.True(t, ok)
	require.Len(t, prompt.Rows, 1)
	require.Len(t, prompt.Rows[0], 2)
	confirm := prompt.Rows[0][1].Data
	assert.True(t, strings.HasPrefix(confirm, rewards.CallbackConfirm+":"))

	b.handleUpdate(ctx, callbackUpdate(confirm, prompt.MessageID))
	edited, ok := rec.LastEdited()
	require.True(t, ok)
	assert.Equal(t, prompt.MessageID, edited.MessageID)
	assert.Contains(t, edited.Text, "Success")

	b.handleUpdate(ctx, textUpdate("!points"))
	assert.Equal(t, "⭐ 1,060 Points Available", lastText(t, rec))

	// Повторное нажатие той же кнопки ничего не списывает
	b.handleUpdate(ctx, callbackUpdate(confirm, prompt.MessageID))
	edited, _ = rec.LastEdited()
	assert.Contains(t, edited.Text, "expired")

	b.handleUpdate(ctx, textUpdate("!points"))
	assert.Equal(t, "⭐ 1,060 Points Available", lastText(t, rec))
}

func TestCallbackEdgeCases(t *testing.T) {
	b, rec := newTestBot(t, testConfig())
	ctx := context.Background()

	upd := callbackUpdate("claim:1", 5)
	upd.CallbackQuery.Message = nil
	b.handleUpdate(ctx, upd)
	assert.Equal(t, []string{"This button has expired"}, rec.Answers)
	assert.Empty(t, rec.Sent)

	b.handleUpdate(ctx, callbackUpdate("bogus:1", 5))
	assert.Equal(t, "Unknown button", rec.Answers[len(rec.Answers)-1])

	b.handleUpdate(ctx, callbackUpdate(opportunities.CallbackDetail+":1", 5))
	assert.NotEmpty(t, rec.Sent)
}

func TestGroupChatIsRejected(t *testing.T) {
	b, rec := newTestBot(t, testConfig())
	upd := textUpdate("!points")
	upd.Message.Chat = telego.Chat{ID: -100, Type: telego.ChatTypeSupergroup}

	b.handleUpdate(context.Background(), upd)
	require.Len(t, rec.Sent, 1)
	assert.Equal(t, int64(-100), rec.Sent[0].ChatID)
	assert.Contains(t, rec.Sent[0].Text, "privately")
}

func TestRateLimitDropsMessages(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 2
	b, rec := newTestBot(t, cfg)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		b.handleUpdate(ctx, textUpdate("!help"))
	}
	assert.Len(t, rec.Sent, 2)
}

// logged собирает все сообщения и поля записей лога в одну строку.
func logged(hook *logtest.Hook) string {
	var sb strings.Builder
	for _, e := range hook.AllEntries() {
		sb.WriteString(e.Message)
		for k, v := range e.Data {
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestAdminPasswordNeverLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	cfg := testConfig()
	cfg.AdminIDs = []int64{userID}
	cfg.AdminPasswordHash = "$argon2id$v=19$m=1024,t=1,p=1$MDEyMzQ1Njc4OWFiY2RlZg$AAAAAAAAAAAAAAAAAAAAAA"
	b, rec := newTestBot(t, cfg)
	ctx := context.Background()

	// Пароль в аргументе команды
	b.handleUpdate(ctx, textUpdate("/login hunter2"))
	assert.Contains(t, lastText(t, rec), "Wrong password")

	// Пароль отдельным сообщением после запроса
	b.handleUpdate(ctx, textUpdate("/login"))
	assert.Contains(t, lastText(t, rec), "Enter the admin password")
	b.handleUpdate(ctx, textUpdate("swordfish"))
	assert.Contains(t, lastText(t, rec), "Wrong password")

	out := logged(hook)
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "swordfish")

	// Обычные сообщения логируются как раньше
	b.handleUpdate(ctx, textUpdate("!points"))
	assert.Contains(t, logged(hook), "!points")
}
