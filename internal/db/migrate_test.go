package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/leetdeck/internal/db"
	"github.com/joestump/leetdeck/internal/logger"
)

func TestSQLiteDSN_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	dsn, err := db.SQLiteDSN(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Contains(t, dsn, filepath.Join(dir, db.FileName))
}

func TestMigrate_Idempotent(t *testing.T) {
	dsn, err := db.SQLiteDSN(t.TempDir())
	require.NoError(t, err)

	conn, err := db.New("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db.SetLogger(logger.NewNop(), false)
	require.NoError(t, db.Migrate(conn, "sqlite3"))
	require.NoError(t, db.Migrate(conn, "sqlite3"))

	var tables []string
	require.NoError(t, conn.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('problems', 'tags', 'problem_tags', 'solutions') ORDER BY name`))
	assert.Equal(t, []string{"problem_tags", "problems", "solutions", "tags"}, tables)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := db.New("oracle", "whatever")
	assert.Error(t, err)
}
