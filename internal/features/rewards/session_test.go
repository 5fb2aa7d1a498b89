package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)}
}

func sampleCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(SampleRewards)
	require.NoError(t, err)
	return c
}

func newTestSession(t *testing.T, balance int64, clock *fakeClock) *Session {
	t.Helper()
	s, err := NewSession(1, balance, sampleCatalog(t), 5*time.Minute, clock.Now)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsNegativeBalance(t *testing.T) {
	_, err := NewSession(1, -10, sampleCatalog(t), time.Minute, nil)
	assert.ErrorIs(t, err, common.ErrNegativeBalance)
}

func TestConfirmDeductsOnce(t *testing.T) {
	s := newTestSession(t, 1560, newClock())

	reward, attempt, pc, err := s.RequestClaim("1")
	require.NoError(t, err)
	assert.True(t, attempt.Eligible)
	assert.Equal(t, "Amazon Gift Card", reward.Name)
	assert.NotEmpty(t, pc.Token)
	// Запрос подтверждения баланс не меняет
	assert.Equal(t, int64(1560), s.Balance())

	_, outcome, receipt, err := s.Confirm(pc.Token)
	require.NoError(t, err)
	assert.Equal(t, Success(), outcome)
	require.NotNil(t, receipt)
	assert.Equal(t, int64(1060), receipt.BalanceAfter)
	assert.Equal(t, int64(1060), s.Balance())

	// Повторное нажатие не списывает второй раз
	_, _, _, err = s.Confirm(pc.Token)
	assert.ErrorIs(t, err, common.ErrNoPendingClaim)
	assert.Equal(t, int64(1060), s.Balance())
	assert.Len(t, s.Receipts(), 1)
}

func TestExactBalanceClaimReachesZero(t *testing.T) {
	catalog, err := NewCatalog([]Reward{{ID: "all", Name: "Everything", Cost: 1560}})
	require.NoError(t, err)
	s, err := NewSession(1, 1560, catalog, time.Minute, newClock().Now)
	require.NoError(t, err)

	_, attempt, pc, err := s.RequestClaim("all")
	require.NoError(t, err)
	require.True(t, attempt.Eligible)

	_, outcome, _, err := s.Confirm(pc.Token)
	require.NoError(t, err)
	assert.Equal(t, Success(), outcome)
	assert.Equal(t, int64(0), s.Balance())
}

func TestRequestClaimIneligibleOpensNothing(t *testing.T) {
	s := newTestSession(t, 150, newClock())

	_, attempt, pc, err := s.RequestClaim("4")
	require.NoError(t, err)
	assert.False(t, attempt.Eligible)
	assert.Equal(t, int64(50), attempt.Shortfall)
	assert.Empty(t, pc.Token)
	assert.Zero(t, s.PendingCount())
	assert.Equal(t, int64(150), s.Balance())
}

func TestCancelLeavesBalanceUnchanged(t *testing.T) {
	s := newTestSession(t, 1560, newClock())

	_, attempt, pc, err := s.RequestClaim("1")
	require.NoError(t, err)
	require.True(t, attempt.Eligible)

	reward, outcome, err := s.Cancel(pc.Token)
	require.NoError(t, err)
	assert.Equal(t, Cancelled(), outcome)
	assert.Equal(t, "1", reward.ID)
	assert.Equal(t, int64(1560), s.Balance())
	assert.Empty(t, s.Receipts())

	// После отмены подтвердить уже нельзя
	_, _, _, err = s.Confirm(pc.Token)
	assert.ErrorIs(t, err, common.ErrNoPendingClaim)
	assert.Equal(t, int64(1560), s.Balance())
}

func TestConfirmReevaluatesAgainstCurrentBalance(t *testing.T) {
	s := newTestSession(t, 1560, newClock())

	// Два подтверждения открыты одновременно: 1000 + 1000 > 1560
	_, _, first, err := s.RequestClaim("3")
	require.NoError(t, err)
	_, _, second, err := s.RequestClaim("3")
	require.NoError(t, err)

	_, outcome, _, err := s.Confirm(first.Token)
	require.NoError(t, err)
	assert.Equal(t, Success(), outcome)
	assert.Equal(t, int64(560), s.Balance())

	_, outcome, receipt, err := s.Confirm(second.Token)
	require.NoError(t, err)
	assert.Equal(t, Ineligible(440), outcome)
	assert.Nil(t, receipt)
	assert.Equal(t, int64(560), s.Balance())
}

func TestUnknownReward(t *testing.T) {
	s := newTestSession(t, 1560, newClock())
	_, _, _, err := s.RequestClaim("nope")
	assert.ErrorIs(t, err, common.ErrUnknownReward)

	_, _, err = s.Evaluate("nope")
	assert.ErrorIs(t, err, common.ErrUnknownReward)
}

func TestPendingClaimExpires(t *testing.T) {
	clock := newClock()
	s := newTestSession(t, 1560, clock)

	_, _, pc, err := s.RequestClaim("2")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(5*time.Minute), pc.ExpiresAt)

	clock.Advance(5 * time.Minute)
	_, _, _, err = s.Confirm(pc.Token)
	assert.ErrorIs(t, err, common.ErrNoPendingClaim)
	assert.Equal(t, int64(1560), s.Balance())
}

func TestExpirePending(t *testing.T) {
	clock := newClock()
	s := newTestSession(t, 1560, clock)

	_, _, _, err := s.RequestClaim("2")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, _, _, err = s.RequestClaim("4")
	require.NoError(t, err)
	assert.Equal(t, 2, s.PendingCount())

	assert.Equal(t, 1, s.ExpirePending(clock.Now().Add(4*time.Minute)))
	assert.Equal(t, 1, s.PendingCount())
	assert.Equal(t, 1, s.ExpirePending(clock.Now().Add(5*time.Minute)))
	assert.Zero(t, s.PendingCount())
}

func TestTouchUpdatesLastSeen(t *testing.T) {
	clock := newClock()
	s := newTestSession(t, 0, clock)
	start := s.LastSeen()
	assert.Equal(t, start, s.StartedAt())

	clock.Advance(time.Minute)
	s.Touch()
	assert.Equal(t, start.Add(time.Minute), s.LastSeen())
}
