package context

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/strata/app/config"
	"go.hackfix.me/strata/db"
	"go.hackfix.me/strata/migrator"
)

// Context contains common objects used by the application. It is passed around
// the application to avoid direct dependencies on external systems, and make
// testing easier.
type Context struct {
	Ctx     context.Context // global context
	FS      vfs.FileSystem  // filesystem
	Env     Environment     // process environment
	Logger  *slog.Logger    // global logger
	TimeNow func() time.Time
	Config  *config.Config

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Migration state
	DB            *db.DB
	History       *db.History
	Registry      *migrator.Registry
	MigrationsDir string

	// Metadata
	Version *VersionInfo
}
