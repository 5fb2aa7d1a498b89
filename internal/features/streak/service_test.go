package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common/commontest"
	"github.com/jishnunambiarr/VolunteerQuest/internal/config"
)

func TestSequence(t *testing.T) {
	steps := Sequence(2 * time.Second)
	require.Len(t, steps, 2)
	assert.Equal(t, Step{Action: ActionShow}, steps[0])
	assert.Equal(t, Step{Action: ActionHide, Wait: 2 * time.Second}, steps[1])

	assert.Equal(t, time.Duration(0), Sequence(-time.Second)[1].Wait)
	assert.Equal(t, "show", ActionShow.String())
	assert.Equal(t, "hide", ActionHide.String())
}

func newTestPlayer(rec *commontest.Recorder, after func(time.Duration) <-chan time.Time) *Player {
	p := NewPlayer(rec, &config.Config{StreakOverlayHold: 2 * time.Second})
	p.after = after
	return p
}

func TestPlayShowsThenHides(t *testing.T) {
	rec := &commontest.Recorder{}
	var waited []time.Duration
	p := newTestPlayer(rec, func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	})

	require.NoError(t, p.Play(context.Background(), 5, 4))

	require.Len(t, rec.Sent, 1)
	assert.Equal(t, "🔥 4\nWeek Streak!", rec.Sent[0].Text)
	assert.Equal(t, []int{rec.Sent[0].MessageID}, rec.DeletedIDs())
	assert.Equal(t, []time.Duration{2 * time.Second}, waited)
}

func TestPlayStopsOnCancel(t *testing.T) {
	rec := &commontest.Recorder{}
	p := newTestPlayer(rec, func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Play(ctx, 5, 4) }()

	require.Eventually(t, func() bool {
		_, ok := rec.LastSent()
		return ok
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Play не завершился после отмены")
	}
	assert.Len(t, rec.DeletedIDs(), 1)
}

func TestPlaySkipsEmptyStreak(t *testing.T) {
	rec := &commontest.Recorder{}
	p := newTestPlayer(rec, time.After)

	require.NoError(t, p.Play(context.Background(), 5, 0))
	assert.Empty(t, rec.Sent)
}

func TestPlayReturnsSendError(t *testing.T) {
	rec := &commontest.Recorder{Err: errors.New("blocked by user")}
	p := newTestPlayer(rec, time.After)

	assert.Error(t, p.Play(context.Background(), 5, 4))
	assert.Empty(t, rec.DeletedIDs())
}
