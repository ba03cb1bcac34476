package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_EmptyPath(t *testing.T) {
	assert.NoError(t, RunMigrations(nil, t.TempDir()))
	assert.NoError(t, RunMigrations(nil, filepath.Join(t.TempDir(), "missing")))
}

func TestRunMigrations_AppliesInOrder(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, InitTestDB("../../migrations"))
	// replaying is a no-op
	require.NoError(t, RunMigrations(DB, filepath.Join("..", "..", "migrations")))

	var tables int
	require.NoError(t, DB.Get(&tables, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_name IN ('users', 'prayer_log', 'zakat_calculations')`))
	assert.Equal(t, 3, tables)
}
