package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	//nolint:revive,nolintlint // Idiomatic way of loading DB libraries.
	_ "github.com/glebarez/go-sqlite"

	"go.hackfix.me/strata/db/types"
)

// DB wraps sql.DB with additional context and time handling.
type DB struct {
	*sql.DB
	ctx     context.Context
	timeNow func() time.Time
	path    string
}

var _ types.Querier = (*DB)(nil)

// Open creates and configures a new SQLite database connection.
func Open(ctx context.Context, path string, timeNow func() time.Time) (*DB, error) {
	var d *DB
	if strings.Contains(path, "mode=memory") || strings.Contains(path, ":memory:") {
		defer func() {
			if d != nil {
				// See https://github.com/mattn/go-sqlite3#faq
				d.SetMaxIdleConns(10)
				d.SetConnMaxLifetime(time.Duration(math.Inf(1)))
			}
		}()
	}

	sqliteDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed opening SQLite database: %w", err)
	}

	d = &DB{DB: sqliteDB, ctx: ctx, path: path, timeNow: timeNow}

	// Enable foreign key enforcement
	_, err = d.Exec(`PRAGMA foreign_keys = ON;`)
	if err != nil {
		return nil, fmt.Errorf("failed enabling foreign key enforcement: %w", err)
	}

	return d, nil
}

// NewContext returns a new child context of the main database context.
func (d *DB) NewContext() context.Context {
	// TODO: Return cancel func?
	ctx, _ := context.WithCancel(d.ctx) //nolint:govet // I'll handle this later...
	return ctx
}

// Path returns the path the database was opened with.
func (d *DB) Path() string {
	return d.path
}

// TimeNow returns the current system time.
func (d *DB) TimeNow() time.Time {
	return d.timeNow()
}
