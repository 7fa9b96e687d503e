package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/strata/app/context"
	aerrors "go.hackfix.me/strata/app/errors"
)

// NewMigration creates a new pair of up/down migration files named after the
// current UTC timestamp.
type NewMigration struct {
	Name string `arg:"" help:"Short description of the migration, e.g. 'create-users'."`
}

var nameSanitizeRx = regexp.MustCompile(`[^a-z0-9-]+`)

// Run the new command.
func (c *NewMigration) Run(appCtx *actx.Context) error {
	name := strings.ToLower(strings.TrimSpace(c.Name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.Trim(nameSanitizeRx.ReplaceAllString(name, ""), "-")
	if name == "" {
		return aerrors.NewWith("invalid migration name", "name", c.Name)
	}

	if err := appCtx.FS.MkdirAll(appCtx.MigrationsDir, 0o755); err != nil {
		return aerrors.NewWithCause("failed creating migrations directory", err,
			"dir", appCtx.MigrationsDir)
	}

	version := appCtx.TimeNow().UTC().Format("20060102150405")
	files := []struct {
		name    string
		content string
	}{
		{fmt.Sprintf("%s-%s.up.sql", version, name), "-- SQL to apply the migration\n"},
		{fmt.Sprintf("%s-%s.down.sql", version, name), "-- SQL to revert the migration\n"},
	}

	for _, f := range files {
		path := filepath.Join(appCtx.MigrationsDir, f.name)
		if err := vfs.WriteFile(appCtx.FS, path, []byte(f.content), 0o644); err != nil {
			return aerrors.NewWithCause("failed writing migration file", err, "path", path)
		}
		if _, err := fmt.Fprintf(appCtx.Stdout, "Created %s\n", path); err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
	}

	return nil
}
