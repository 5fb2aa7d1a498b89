package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnunambiarr/VolunteerQuest/internal/features/rewards"
)

func TestStaticSourcesAreUsable(t *testing.T) {
	ctx := context.Background()
	src := staticSources()

	items, err := src.catalog.Rewards(ctx)
	require.NoError(t, err)
	catalog, err := rewards.NewCatalog(items)
	require.NoError(t, err)
	assert.Equal(t, 5, catalog.Len())

	p, err := src.profiles.Profile(ctx, 777)
	require.NoError(t, err)
	assert.Equal(t, int64(777), p.UserID)

	volunteers, err := src.volunteers.Volunteers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, volunteers)

	list, err := src.opportunities.Opportunities(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	assert.NotNil(t, src.adminStore)
}

func TestCloseWithoutDatabase(t *testing.T) {
	a := &App{}
	assert.NotPanics(t, a.Close)
}
