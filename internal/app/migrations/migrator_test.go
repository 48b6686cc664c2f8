package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_reports.sql", "001_init.sql", "README.md", "010_late.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SortedMigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_reports.sql", "010_late.sql"}, files)
}

func TestSortedMigrationFiles_MissingDir(t *testing.T) {
	_, err := SortedMigrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", MigrationVersion("migrations/001_init.sql"))
	assert.Equal(t, "002", MigrationVersion("002_add_enquiries_index.sql"))
}

func TestRepositorySchemaIsOrdered(t *testing.T) {
	files, err := SortedMigrationFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", MigrationVersion(files[0]))
}
