package cli

import (
	"slices"

	actx "go.hackfix.me/strata/app/context"
	aerrors "go.hackfix.me/strata/app/errors"
	"go.hackfix.me/strata/migrator"
)

// List shows all known migrations and their state.
type List struct{}

// Run the list command.
func (c *List) Run(appCtx *actx.Context) error {
	dbCtx := appCtx.DB.NewContext()
	applied, err := appCtx.History.List(dbCtx)
	if err != nil {
		return aerrors.NewWithCause("failed listing applied versions", err)
	}

	data := [][]string{}
	for _, m := range appCtx.Registry.All() {
		state := "pending"
		if _, ok := applied[m.Version]; ok {
			state = "applied"
			delete(applied, m.Version)
		}
		data = append(data, []string{string(m.Version), m.Name, state})
	}

	// Remaining applied versions have no registered migration.
	missing := make([]migrator.Version, 0, len(applied))
	for v := range applied {
		missing = append(missing, v)
	}
	slices.Sort(missing)
	for _, v := range missing {
		data = append(data, []string{string(v), "?", "missing"})
	}

	if len(data) == 0 {
		return nil
	}

	if err = renderTable([]string{"Version", "Name", "State"}, data, appCtx.Stdout); err != nil {
		return aerrors.NewWithCause("failed rendering migrations table", err)
	}

	return nil
}
