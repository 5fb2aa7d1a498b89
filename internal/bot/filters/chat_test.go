package filters

import (
	"context"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common/commontest"
)

func TestCheckAccess(t *testing.T) {
	rec := &commontest.Recorder{}
	f := NewChatFilter(rec)
	ctx := context.Background()
	user := &telego.User{ID: 1, FirstName: "Rawbin"}

	assert.True(t, f.CheckAccess(ctx, telego.Chat{ID: 1, Type: telego.ChatTypePrivate}, user, true))
	assert.False(t, f.CheckAccess(ctx, telego.Chat{ID: 1, Type: telego.ChatTypePrivate}, nil, true))
	assert.False(t, f.CheckAccess(ctx, telego.Chat{ID: 1, Type: telego.ChatTypePrivate}, &telego.User{ID: 2, IsBot: true}, true))
	assert.Empty(t, rec.Sent)

	group := telego.Chat{ID: -100, Type: telego.ChatTypeSupergroup}
	assert.False(t, f.CheckAccess(ctx, group, user, false))
	assert.Empty(t, rec.Sent)

	assert.False(t, f.CheckAccess(ctx, group, user, true))
	last, ok := rec.LastSent()
	assert.True(t, ok)
	assert.Equal(t, int64(-100), last.ChatID)
}
