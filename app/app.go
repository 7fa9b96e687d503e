package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/strata/app/config"
	actx "go.hackfix.me/strata/app/context"
	"go.hackfix.me/strata/cli"
	"go.hackfix.me/strata/db"
	"go.hackfix.me/strata/migrator"
)

// App is the application.
type App struct {
	name    string
	ctx     *actx.Context
	cli     *cli.CLI
	dataDir string
	// the logging level is set via the CLI, if the app was initialized with the
	// WithLogger option.
	logLevel *slog.LevelVar
}

// New initializes a new application.
func New(name, configFilePath, dataDir string, opts ...Option) (*App, error) {
	version, err := actx.GetVersion()
	if err != nil {
		return nil, err
	}

	defaultCtx := &actx.Context{
		Ctx:     context.Background(),
		FS:      memoryfs.New(),
		Logger:  slog.Default(),
		TimeNow: time.Now,
		Version: version,
	}
	app := &App{name: name, ctx: defaultCtx, dataDir: dataDir}

	for _, opt := range opts {
		opt(app)
	}

	ver := fmt.Sprintf("%s %s", app.name, app.ctx.Version.String())
	app.cli, err = cli.New(configFilePath, dataDir, ver)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run initializes the application environment and starts execution of the
// application.
func (app *App) Run(args []string) error {
	if err := app.cli.Parse(args); err != nil {
		return err
	}

	if app.logLevel != nil {
		app.logLevel.Set(app.cli.Log.Level)
		slog.SetLogLoggerLevel(app.cli.Log.Level)
	}

	if err := app.setup(); err != nil {
		return err
	}

	if err := app.cli.Execute(app.ctx); err != nil {
		return err
	}

	return nil
}

// setup loads the configuration, opens the target database, and populates the
// migration registry from the migrations directory.
func (app *App) setup() error {
	cfg := config.NewConfig(app.ctx.FS, app.cli.ConfigFile)
	if err := cfg.Load(); err != nil {
		return err
	}
	cfg.SetDefaults()
	app.cli.ApplyConfig(cfg)
	app.ctx.Config = cfg

	app.ctx.MigrationsDir = app.cli.MigrationsDir

	// The new command only renders files; it doesn't touch the database.
	if strings.HasPrefix(app.cli.Command(), "new") {
		return nil
	}

	if app.ctx.DB == nil {
		dbPath := app.cli.DB
		if dbPath == "" {
			if err := app.ctx.FS.MkdirAll(app.dataDir, 0o755); err != nil {
				return fmt.Errorf("failed creating data directory: %w", err)
			}
			dbPath = filepath.Join(app.dataDir, fmt.Sprintf("%s.db", app.name))
		}
		d, err := db.Open(app.ctx.Ctx, dbPath, app.ctx.TimeNow)
		if err != nil {
			return err
		}
		app.ctx.DB = d
	}

	table := ""
	if cfg.Migrations.Table.Valid {
		table = cfg.Migrations.Table.V
	}
	app.ctx.History = db.NewHistory(app.ctx.DB, table)

	migrations, err := migrator.LoadMigrations(app.ctx.FS, app.ctx.MigrationsDir)
	if err != nil {
		return err
	}
	app.ctx.Registry = migrator.NewRegistry()
	if err = app.ctx.Registry.RegisterAll(migrations); err != nil {
		return err
	}

	return nil
}
