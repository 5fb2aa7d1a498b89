package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedMigrations(t *testing.T) {
	list, err := loadMigrations(migrationsFS, "migrations")
	require.NoError(t, err)
	require.Len(t, list, 3)

	for i, m := range list {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.SQL)
	}
	assert.Contains(t, list[0].SQL, "volunteer_profiles")
	assert.Contains(t, list[1].SQL, "CREATE TABLE IF NOT EXISTS rewards")
	assert.Contains(t, list[2].SQL, "admin_sessions")
}

func TestLoadMigrationsOrderAndErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_late.sql":  {Data: []byte("SELECT 10")},
		"m/002_early.sql": {Data: []byte("SELECT 2")},
		"m/README.md":     {Data: []byte("skip")},
	}
	list, err := loadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.Equal(t, 10, list[1].Version)

	_, err = loadMigrations(fstest.MapFS{"m/abc_x.sql": {Data: []byte("x")}}, "m")
	assert.Error(t, err)

	_, err = loadMigrations(fstest.MapFS{"m/nounderscore.sql": {Data: []byte("x")}}, "m")
	assert.Error(t, err)

	_, err = loadMigrations(fstest.MapFS{
		"m/1_a.sql":   {Data: []byte("x")},
		"m/001_b.sql": {Data: []byte("y")},
	}, "m")
	assert.Error(t, err)

	_, err = loadMigrations(fstest.MapFS{}, "missing")
	assert.Error(t, err)
}
