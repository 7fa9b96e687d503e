package cli

import (
	"fmt"
	"text/tabwriter"

	actx "go.hackfix.me/strata/app/context"
	aerrors "go.hackfix.me/strata/app/errors"
	"go.hackfix.me/strata/migrator"
)

// Status shows a summary of the migration state.
type Status struct{}

// Run the status command.
func (c *Status) Run(appCtx *actx.Context) error {
	planner := migrator.NewPlanner(appCtx.Registry, appCtx.History)
	st, err := planner.Status(appCtx.DB.NewContext())
	if err != nil {
		return aerrors.NewWithCause("failed computing migration status", err)
	}

	w := tabwriter.NewWriter(appCtx.Stdout, 6, 2, 2, ' ', 0)
	rows := []struct {
		label string
		value any
	}{
		{"Current version", st.Current},
		{"Latest version", st.Latest},
		{"Available migrations", st.Available},
		{"Executed migrations", st.Executed},
		{"New migrations", st.New},
	}
	for _, row := range rows {
		if _, err = fmt.Fprintf(w, "%s:\t%v\n", row.label, row.value); err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
	}
	if err = w.Flush(); err != nil {
		return aerrors.NewWithCause("failed flushing stdout writer", err)
	}

	if len(st.Unavailable) > 0 {
		_, err = fmt.Fprintf(appCtx.Stdout,
			"\nWarning: %d applied migrations are missing from the migrations directory:\n",
			len(st.Unavailable))
		if err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
		for _, v := range st.Unavailable {
			if _, err = fmt.Fprintf(appCtx.Stdout, "  - %s\n", v); err != nil {
				return aerrors.NewWithCause("failed writing to stdout", err)
			}
		}
	}

	return nil
}
