package cli

import (
	"fmt"

	actx "go.hackfix.me/strata/app/context"
	aerrors "go.hackfix.me/strata/app/errors"
)

// The Init command creates the migration tracking table in the target database.
type Init struct{}

// Run the init command.
func (c *Init) Run(appCtx *actx.Context) error {
	if err := appCtx.History.Init(appCtx.DB.NewContext()); err != nil {
		return aerrors.NewWithCause("failed initializing migration tracking", err,
			"database", appCtx.DB.Path())
	}

	_, err := fmt.Fprintf(appCtx.Stdout, "Created migration tracking table '%s' in %s\n",
		appCtx.History.Table(), appCtx.DB.Path())
	if err != nil {
		return aerrors.NewWithCause("failed writing to stdout", err)
	}

	return nil
}
