package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/common/commontest"
)

type missingSource struct{}

func (missingSource) Profile(context.Context, int64) (*Profile, error) {
	return nil, common.ErrProfileNotFound
}

type fixedBalance struct {
	balance int64
	err     error
}

func (f fixedBalance) Balance(context.Context, int64) (int64, error) {
	return f.balance, f.err
}

type overlayCall struct {
	chatID int64
	weeks  int
}

type fakeOverlay struct{ calls chan overlayCall }

func (f fakeOverlay) Play(_ context.Context, chatID int64, weeks int) error {
	f.calls <- overlayCall{chatID: chatID, weeks: weeks}
	return nil
}

func TestStaticProfileIsACopy(t *testing.T) {
	svc := NewService(NewStaticRepository())
	p, err := svc.Profile(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, "Rawbin", p.Name)
	assert.Equal(t, 156, p.TotalHours)

	p.Yearly[0].Hours = 0
	again, err := svc.Profile(context.Background(), 42)
	require.NoError(t, err)
	hours, ok := again.HoursIn(2024)
	assert.True(t, ok)
	assert.Equal(t, 56, hours)

	_, ok = again.HoursIn(2019)
	assert.False(t, ok)
}

func TestInitialBalance(t *testing.T) {
	balance, err := NewService(NewStaticRepository()).InitialBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1560), balance)

	_, err = NewService(missingSource{}).InitialBalance(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestFormatProfile(t *testing.T) {
	p := SampleProfile
	text := FormatProfile(&p, 1060)

	assert.Contains(t, text, "👤 Rawbin\nVolunteer since 2022")
	assert.Contains(t, text, "⭐ 1,060 Points Available")
	assert.Contains(t, text, "⏱ 156 Total Hours")
	assert.Contains(t, text, "🔥 4 Week Streak")
	assert.Contains(t, text, "2024: 56 hours (!certificate 2024)")
	assert.Contains(t, text, "2023: 100 hours")
}

func TestHandleProfileUsesLiveBalanceAndPlaysOverlay(t *testing.T) {
	rec := &commontest.Recorder{}
	overlay := fakeOverlay{calls: make(chan overlayCall, 1)}
	h := NewHandler(NewService(NewStaticRepository()), fixedBalance{balance: 1060}, overlay, rec)

	h.HandleProfile(context.Background(), 9, 1)

	last, ok := rec.LastSent()
	require.True(t, ok)
	assert.Contains(t, last.Text, "⭐ 1,060 Points Available")

	// Оверлей уже отыгран к моменту возврата из обработчика
	require.Len(t, overlay.calls, 1)
	assert.Equal(t, overlayCall{chatID: 9, weeks: 4}, <-overlay.calls)
}

func TestHandleProfileOverlayErrorIsNotFatal(t *testing.T) {
	rec := &commontest.Recorder{}
	h := NewHandler(NewService(NewStaticRepository()), fixedBalance{balance: 10}, failingOverlay{}, rec)

	assert.NotPanics(t, func() { h.HandleProfile(context.Background(), 9, 1) })
	assert.Len(t, rec.Sent, 1)
}

type failingOverlay struct{}

func (failingOverlay) Play(context.Context, int64, int) error { return errors.New("telegram down") }

func TestHandleProfileFallsBackToStoredPoints(t *testing.T) {
	rec := &commontest.Recorder{}
	h := NewHandler(NewService(NewStaticRepository()), fixedBalance{err: errors.New("down")}, nil, rec)

	h.HandleProfile(context.Background(), 9, 1)

	last, ok := rec.LastSent()
	require.True(t, ok)
	assert.Contains(t, last.Text, "⭐ 1,560 Points Available")
}

func TestHandleProfileNotFound(t *testing.T) {
	rec := &commontest.Recorder{}
	h := NewHandler(NewService(missingSource{}), fixedBalance{}, nil, rec)

	h.HandleProfile(context.Background(), 9, 1)

	last, ok := rec.LastSent()
	require.True(t, ok)
	assert.Contains(t, last.Text, "profile was not found")
}
