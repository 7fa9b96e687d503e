package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"go.hackfix.me/strata/app/config"
	actx "go.hackfix.me/strata/app/context"
)

// CLI is the command line interface of Strata.
type CLI struct {
	Init    Init         `kong:"cmd,help='Create the migration tracking table in the target database.'"`
	List    List         `kong:"cmd,help='List all known migrations and their state.',aliases='ls'"`
	Migrate Migrate      `kong:"cmd,help='Apply or revert migrations to reach a target version.'"`
	New     NewMigration `kong:"cmd,help='Create a new pair of migration files.'"`
	Status  Status       `kong:"cmd,help='Show a summary of the migration state.'"`

	Log struct {
		Level slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the app logging level."`
	} `embed:"" prefix:"log-"`
	// NOTE: I'm deliberately not using kong.ConfigFlag or its support for reading
	// values from configuration files, since I want to manage configuration
	// independently from the CLI.
	ConfigFile    string           `kong:"default='${configFile}',help='Path to the Strata configuration file.'"`
	DataDir       string           `kong:"default='${dataDir}',help='Path to the directory where Strata data is stored.'"`
	DB            string           `kong:"help='Path to the target SQLite database.'"`
	MigrationsDir string           `kong:"help='Path to the directory containing migration SQL files.'"`
	Version       kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// New initializes the command-line interface.
func New(configFilePath, dataDir, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name("strata"),
		kong.UsageOnError(),
		kong.DefaultEnvars("STRATA"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"dataDir":    dataDir,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Execute starts the command execution. Parse must be called before this method.
func (c *CLI) Execute(appCtx *actx.Context) error {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	//nolint:wrapcheck // This is fine.
	return c.kctx.Run(appCtx)
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// Command returns the full path of the executed command.
func (c *CLI) Command() string {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	cmdPath := []string{}
	for _, p := range c.kctx.Path {
		if p.Command != nil {
			cmdPath = append(cmdPath, p.Command.Name)
		}
	}

	return strings.Join(cmdPath, " ")
}

// ApplyConfig applies configuration values to the CLI, but only if they weren't
// already set.
func (c *CLI) ApplyConfig(cfg *config.Config) {
	if c.DB == "" && cfg.Database.Path.Valid {
		c.DB = cfg.Database.Path.V
	}
	if c.MigrationsDir == "" && cfg.Migrations.Dir.Valid {
		c.MigrationsDir = cfg.Migrations.Dir.V
	}
}
