package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	for _, table := range []string{"migrations", "view_states", "known_users", "mirrored_tasks"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist", table)
	}

	applied, err := getAppliedMigrations(db)
	require.NoError(t, err)
	assert.True(t, applied[1])
	assert.True(t, applied[2])
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestLoadMigrations_SortedWithDownScripts(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, 2, migrations[1].Version)
	for _, m := range migrations {
		assert.NotEmpty(t, m.Up)
		assert.NotEmpty(t, m.Down)
	}
}

func TestPendingMigrations(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}

	pending := PendingMigrations(all, map[int]bool{1: true, 3: true})
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)

	assert.Len(t, PendingMigrations(all, map[int]bool{}), 3)
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, ExtractVersion("000001_create_view_state.up.sql"))
	assert.Equal(t, 12, ExtractVersion("000012_x.down.sql"))
	assert.Equal(t, 0, ExtractVersion("readme.sql"))
}
