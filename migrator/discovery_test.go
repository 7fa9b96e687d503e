package migrator

import (
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFiles(t *testing.T, fsys vfs.FileSystem, files map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll("/migrations", 0o755))
	for name, content := range files {
		require.NoError(t,
			vfs.WriteFile(fsys, "/migrations/"+name, []byte(content), 0o644))
	}
}

func TestLoadMigrations(t *testing.T) {
	t.Parallel()

	fsys := memoryfs.New()
	writeTestFiles(t, fsys, map[string]string{
		"20240102120000-add-index.up.sql":      "CREATE INDEX i ON users (name);",
		"20240102120000-add-index.down.sql":    "DROP INDEX i;",
		"20240101120000-create-users.up.sql":   "CREATE TABLE users (id INTEGER);",
		"20240101120000-create-users.down.sql": "DROP TABLE users;",
		// No down script; the migration is irreversible but valid.
		"20240103120000-backfill.up.sql": "UPDATE users SET name = '';",
		// Ignored: not matching the naming scheme.
		"README.md":    "notes",
		"20240104.sql": "SELECT 1;",
	})

	migrations, err := LoadMigrations(fsys, "/migrations")
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, Version("20240101120000"), migrations[0].Version)
	assert.Equal(t, "create-users", migrations[0].Name)
	assert.Equal(t, "CREATE TABLE users (id INTEGER);", migrations[0].Up)
	assert.Equal(t, "DROP TABLE users;", migrations[0].Down)
	assert.True(t, migrations[0].Reversible())

	assert.Equal(t, Version("20240102120000"), migrations[1].Version)
	assert.Equal(t, "add-index", migrations[1].Name)

	assert.Equal(t, Version("20240103120000"), migrations[2].Version)
	assert.False(t, migrations[2].Reversible())
}

func TestLoadMigrationsDownWithoutUp(t *testing.T) {
	t.Parallel()

	fsys := memoryfs.New()
	writeTestFiles(t, fsys, map[string]string{
		"20240101120000-orphan.down.sql": "DROP TABLE users;",
	})

	migrations, err := LoadMigrations(fsys, "/migrations")
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Empty(t, migrations[0].Up)

	// Registration surfaces the unresolvable entry.
	err = NewRegistry().RegisterAll(migrations)
	var unresErr UnresolvableError
	require.ErrorAs(t, err, &unresErr)
	assert.Equal(t, Version("20240101120000"), unresErr.Version)
}

func TestLoadMigrationsInconsistentNames(t *testing.T) {
	t.Parallel()

	fsys := memoryfs.New()
	writeTestFiles(t, fsys, map[string]string{
		"20240101120000-create-users.up.sql": "CREATE TABLE users (id INTEGER);",
		"20240101120000-make-users.down.sql": "DROP TABLE users;",
	})

	_, err := LoadMigrations(fsys, "/migrations")
	assert.ErrorContains(t, err, "inconsistent names for migration version 20240101120000")
}

func TestLoadMigrationsMissingDir(t *testing.T) {
	t.Parallel()

	migrations, err := LoadMigrations(memoryfs.New(), "/nope")
	assert.NoError(t, err)
	assert.Empty(t, migrations)
}
