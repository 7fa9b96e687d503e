package cli

import (
	"bufio"
	"fmt"
	"strings"

	actx "go.hackfix.me/strata/app/context"
	aerrors "go.hackfix.me/strata/app/errors"
	"go.hackfix.me/strata/migrator"
)

// Migrate applies or reverts migrations to reach a target version. The target
// may be a literal version, "0", an alias (first, latest, current, prev,
// next), or a relative reference like "+2" or "-1".
type Migrate struct {
	Target string `arg:"" optional:"" default:"latest" help:"Target version, alias or relative reference."`
	Force  bool   `help:"Don't prompt for confirmation when applied migrations are missing."`
	DryRun bool   `help:"Print the migration plan without executing it."`
}

// Run the migrate command.
func (c *Migrate) Run(appCtx *actx.Context) error {
	dbCtx := appCtx.DB.NewContext()
	planner := migrator.NewPlanner(appCtx.Registry, appCtx.History)

	target, ok, err := planner.ResolveTarget(dbCtx, c.Target)
	if err != nil {
		return aerrors.NewWithCause("failed resolving target version", err,
			"target", c.Target)
	}
	if !ok {
		return aerrors.NewWith("cannot resolve target version", "target", c.Target)
	}

	st, err := planner.Status(dbCtx)
	if err != nil {
		return aerrors.NewWithCause("failed computing migration status", err)
	}
	if len(st.Unavailable) > 0 && !c.DryRun {
		if proceed, cerr := c.confirmUnavailable(appCtx, st.Unavailable); cerr != nil {
			return cerr
		} else if !proceed {
			_, err = fmt.Fprintln(appCtx.Stdout, "Migration cancelled.")
			if err != nil {
				return aerrors.NewWithCause("failed writing to stdout", err)
			}
			return nil
		}
	}

	direction := migrator.DirectionUp
	if target.Compare(st.Current) < 0 {
		direction = migrator.DirectionDown
	}

	plan, err := planner.Plan(dbCtx, direction, target)
	if err != nil {
		return aerrors.NewWithCause("failed computing migration plan", err,
			"target", target)
	}

	if plan.Empty() {
		_, err = fmt.Fprintf(appCtx.Stdout,
			"Already at version %s; nothing to execute.\n", st.Current)
		if err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
		return nil
	}

	if c.DryRun {
		return c.printPlan(appCtx, plan)
	}

	runner := migrator.NewRunner(appCtx.DB, appCtx.History, appCtx.Logger)
	if err = runner.Run(dbCtx, plan); err != nil {
		return aerrors.NewWithCause("failed executing migration plan", err,
			"target", target)
	}

	_, err = fmt.Fprintf(appCtx.Stdout, "Migrated %s to version %s (%d migrations)\n",
		plan.Direction, target, len(plan.Steps))
	if err != nil {
		return aerrors.NewWithCause("failed writing to stdout", err)
	}

	return nil
}

func (c *Migrate) printPlan(appCtx *actx.Context, plan *migrator.Plan) error {
	for _, step := range plan.Steps {
		_, err := fmt.Fprintf(appCtx.Stdout, "%s %s\n", step.Direction, step.Migration)
		if err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
	}
	return nil
}

// confirmUnavailable warns about applied migrations that are missing from the
// registry, and asks the user whether to proceed anyway. Missing migrations
// can be neither re-applied nor reverted, so executing a plan around them is
// the user's call.
func (c *Migrate) confirmUnavailable(
	appCtx *actx.Context, unavailable []migrator.Version,
) (bool, error) {
	_, err := fmt.Fprintf(appCtx.Stdout,
		"Warning: %d applied migrations are missing from the migrations directory:\n",
		len(unavailable))
	if err != nil {
		return false, aerrors.NewWithCause("failed writing to stdout", err)
	}
	for _, v := range unavailable {
		if _, err = fmt.Fprintf(appCtx.Stdout, "  - %s\n", v); err != nil {
			return false, aerrors.NewWithCause("failed writing to stdout", err)
		}
	}

	if c.Force {
		return true, nil
	}

	if _, err = fmt.Fprint(appCtx.Stdout, "Continue anyway? [y/N]: "); err != nil {
		return false, aerrors.NewWithCause("failed writing to stdout", err)
	}

	scanner := bufio.NewScanner(appCtx.Stdin)
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			return false, aerrors.NewWithCause("failed reading from stdin", err)
		}
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}
