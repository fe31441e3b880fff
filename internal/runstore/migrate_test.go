package runstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/schema"
)

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRuns_UnsupportedBackend(t *testing.T) {
	err := MigrateRuns("cockroach", "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateRuns_SQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Migrate to latest version
	err := MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Second run should be a no-op
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Migrate to a specific version
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Roll back everything
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
}

func TestMigrateRuns_SQLiteInMemory(t *testing.T) {
	err := MigrateRuns(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
