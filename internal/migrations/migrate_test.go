package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestMigrationVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000001_create_rounds.up.sql",
		"000001_create_rounds.down.sql",
		"000012_add_index.up.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000099_dir"), 0o755))

	assert.Equal(t, int64(12), findLatestMigrationVersion(dir))
}

func TestFindLatestMigrationVersionMissingDir(t *testing.T) {
	assert.Equal(t, int64(0), findLatestMigrationVersion(filepath.Join(t.TempDir(), "nope")))
}

func TestShippedMigrations(t *testing.T) {
	assert.Equal(t, int64(2), findLatestMigrationVersion(filepath.Join("..", "..", Dir)))
}

func TestRunMigrationsEmptyURL(t *testing.T) {
	assert.Error(t, RunMigrations(""))
}
