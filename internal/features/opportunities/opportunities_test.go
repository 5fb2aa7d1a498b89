package opportunities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
	"github.com/jishnunambiarr/VolunteerQuest/internal/common/commontest"
)

func ids(list []Opportunity) []string {
	out := make([]string, 0, len(list))
	for _, o := range list {
		out = append(out, o.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	svc := NewService(NewStaticRepository())
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"   ", []string{"1", "2", "3"}},
		{"park", []string{"2"}},
		{"GOLDEN", []string{"3"}},
		{"downtown", []string{"1"}},
		{"e", []string{"1", "2", "3"}},
		// Описание в поиске не участвует
		{"litter", []string{}},
	}
	for _, tt := range tests {
		got, err := svc.Search(ctx, tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ids(got), "query=%q", tt.query)
	}
}

func TestGet(t *testing.T) {
	svc := NewService(NewStaticRepository())

	o, err := svc.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Senior Home Companion", o.Title)

	_, err = svc.Get(context.Background(), "9")
	assert.ErrorIs(t, err, common.ErrOpportunityNotFound)
}

func TestParseCallback(t *testing.T) {
	id, ok := ParseCallback("opportunity:2")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	for _, bad := range []string{"opportunity:", "claim:2", "opportunity", ""} {
		_, ok := ParseCallback(bad)
		assert.False(t, ok, bad)
	}
}

func TestHandleDiscover(t *testing.T) {
	rec := &commontest.Recorder{}
	h := NewHandler(NewService(NewStaticRepository()), rec)

	h.HandleDiscover(context.Background(), 1, []string{"central", "park"})
	last, ok := rec.LastSent()
	require.True(t, ok)
	assert.Contains(t, last.Text, "Park Cleanup Drive")
	assert.NotContains(t, last.Text, "Food Bank")
	require.Len(t, last.Rows, 1)
	assert.Equal(t, "opportunity:2", last.Rows[0][0].Data)

	h.HandleDiscover(context.Background(), 1, []string{"mars"})
	last, _ = rec.LastSent()
	assert.Equal(t, `🔍 No opportunities match "mars"`, last.Text)
}

func TestHandleDetail(t *testing.T) {
	rec := &commontest.Recorder{}
	h := NewHandler(NewService(NewStaticRepository()), rec)

	h.HandleDetailButton(context.Background(), 1, "cb", "1")
	last, ok := rec.LastSent()
	require.True(t, ok)
	assert.Contains(t, last.Text, "Food Bank Assistant\nCity Food Bank")
	assert.Contains(t, last.Text, "Requirements\n• Must be 16 or older")
	assert.Contains(t, last.Text, "Your Impact\nYour 3 hours help provide meals")
	assert.Equal(t, []string{"cb"}, rec.Answered)

	h.HandleOpportunity(context.Background(), 1, []string{"42"})
	last, _ = rec.LastSent()
	assert.Equal(t, "❌ Opportunity not found. See !discover for the list", last.Text)

	h.HandleOpportunity(context.Background(), 1, nil)
	last, _ = rec.LastSent()
	assert.Contains(t, last.Text, "Usage")
}
