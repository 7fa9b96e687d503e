package migrator

import (
	"context"
	"fmt"
	"slices"
)

// Status is a read-only summary of the migration state. It is purely
// observational; no business rule depends on it.
type Status struct {
	// Available is the number of registered migrations.
	Available int
	// Executed is the number of applied versions, as counted by the store.
	Executed int
	// New is the number of registered migrations that haven't been applied.
	New int
	// Unavailable lists applied versions with no matching registered
	// migration, e.g. migration files deleted after being applied. They are
	// sorted ascending.
	Unavailable []Version
	// Current is the greatest applied version known to the registry.
	Current Version
	// Latest is the greatest registered version.
	Latest Version
}

// Status derives the migration state summary from the registry and the
// applied-version history.
func (p *Planner) Status(ctx context.Context) (*Status, error) {
	applied, err := p.hist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed listing applied versions: %w", err)
	}
	executed, err := p.hist.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed counting applied versions: %w", err)
	}

	st := &Status{
		Available: p.reg.Count(),
		Executed:  executed,
		Current:   Zero,
		Latest:    p.reg.Latest(),
	}

	for v := range applied {
		if !p.reg.Has(v) {
			st.Unavailable = append(st.Unavailable, v)
		} else if v.Compare(st.Current) > 0 {
			st.Current = v
		}
	}
	slices.Sort(st.Unavailable)

	executedAvailable := len(applied) - len(st.Unavailable)
	st.New = st.Available - executedAvailable

	return st, nil
}
