package migrator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Migration files are named {version}-{name}.{up|down}.sql, where version is
// a string of digits. Files not matching this pattern are ignored.
var migrationFileRx = regexp.MustCompile(`^([0-9]+)-([^.]+)\.(up|down)\.sql$`)

// LoadMigrations reads migration file pairs from dir and returns the
// discovered migrations in ascending version order. A version that only has
// a down script is still returned, so that registering it surfaces an
// UnresolvableError naming the entry, rather than it disappearing silently.
// A missing directory yields no migrations and no error.
func LoadMigrations(fsys vfs.FileSystem, dir string) ([]*Migration, error) {
	entries, err := vfs.ReadDir(fsys, dir)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading migrations directory: %w", err)
	}

	units := map[Version]*Migration{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationFileRx.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		version, name, kind := Version(match[1]), match[2], match[3]
		script, err := vfs.ReadFile(fsys, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed reading migration file '%s': %w",
				entry.Name(), err)
		}

		m, ok := units[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			units[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf(
				"inconsistent names for migration version %s: '%s' and '%s'",
				version, m.Name, name)
		}

		if kind == "up" {
			m.Up = string(script)
		} else {
			m.Down = string(script)
		}
	}

	migrations := make([]*Migration, 0, len(units))
	for _, m := range units {
		migrations = append(migrations, m)
	}
	slices.SortFunc(migrations, func(a, b *Migration) int {
		return a.Version.Compare(b.Version)
	})

	return migrations, nil
}
