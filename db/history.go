package db

import (
	"context"
	"fmt"

	"go.hackfix.me/strata/db/types"
	"go.hackfix.me/strata/migrator"
)

// DefaultHistoryTable is the default name of the table recording applied
// migration versions in the target database.
const DefaultHistoryTable = "_migrations"

// History records applied migration versions, one row per version, in a
// dedicated table of the target database. It implements migrator.History.
type History struct {
	d     types.Querier
	table string
}

var _ migrator.History = (*History)(nil)

// NewHistory returns a History backed by the given table. An empty table
// name selects DefaultHistoryTable.
func NewHistory(d types.Querier, table string) *History {
	if table == "" {
		table = DefaultHistoryTable
	}
	return &History{d: d, table: table}
}

// Init creates the history table if it doesn't exist yet.
func (h *History) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)`, h.table)
	if _, err := h.d.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed creating history table '%s': %w", h.table, err)
	}

	return nil
}

// Table returns the name of the history table.
func (h *History) Table() string {
	return h.table
}

// List returns the set of applied versions.
func (h *History) List(ctx context.Context) (map[migrator.Version]struct{}, error) {
	query := fmt.Sprintf(`SELECT version FROM "%s"`, h.table)
	rows, err := h.d.QueryContext(ctx, query)
	if err != nil {
		return nil, types.LoadError{ModelName: "applied versions", Err: err}
	}
	defer rows.Close() //nolint:errcheck // Read-only query.

	applied := map[migrator.Version]struct{}{}
	for rows.Next() {
		var version string
		if err = rows.Scan(&version); err != nil {
			return nil, types.ScanError{ModelName: "applied version", Err: err}
		}
		applied[migrator.Version(version)] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating over applied version rows: %w", err)
	}

	return applied, nil
}

// Count returns the number of applied versions.
func (h *History) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, h.table)
	var count int
	if err := h.d.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed counting applied versions: %w", err)
	}

	return count, nil
}

// Contains reports whether the version is marked as applied.
func (h *History) Contains(ctx context.Context, version migrator.Version) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM "%s" WHERE version = ?`, h.table)
	var count int
	if err := h.d.QueryRowContext(ctx, query, string(version)).Scan(&count); err != nil {
		return false, fmt.Errorf("failed querying applied version %s: %w", version, err)
	}

	return count > 0, nil
}

// MarkApplied records the version as applied. It returns
// types.DuplicateError if the version is already recorded.
func (h *History) MarkApplied(ctx context.Context, version migrator.Version) error {
	stmt := fmt.Sprintf(`INSERT INTO "%s" (version, applied_at) VALUES (?, ?)`, h.table)
	_, err := h.d.ExecContext(ctx, stmt, string(version), h.d.TimeNow().UTC())
	if err != nil {
		return types.Err("applied version", fmt.Sprintf("version %s", version), err)
	}

	return nil
}

// MarkReverted removes the applied record for the version. It returns
// types.NoResultError if the version wasn't recorded as applied.
func (h *History) MarkReverted(ctx context.Context, version migrator.Version) error {
	stmt := fmt.Sprintf(`DELETE FROM "%s" WHERE version = ?`, h.table)
	res, err := h.d.ExecContext(ctx, stmt, string(version))
	if err != nil {
		return fmt.Errorf("failed deleting applied version %s: %w", version, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed getting affected rows: %w", err)
	}
	if n == 0 {
		return types.NoResultError{
			ModelName: "applied version", ID: fmt.Sprintf("version %s", version),
		}
	}

	return nil
}
