package migrator

import (
	"context"
	"fmt"
	"log/slog"

	"go.hackfix.me/strata/db/types"
)

// Runner executes migration plans against a database. Each step's completion
// is persisted to the history immediately after its script runs, so a plan
// aborted partway through leaves the applied set in a valid partial state:
// everything executed so far is recorded, everything not yet reached is
// untouched. A plan is not atomic across steps.
type Runner struct {
	d      types.Querier
	hist   History
	logger *slog.Logger
}

// NewRunner returns a Runner executing against the given database and
// recording progress in hist.
func NewRunner(d types.Querier, hist History, logger *slog.Logger) *Runner {
	return &Runner{d: d, hist: hist, logger: logger}
}

// Run executes the plan in order. It stops at the first failing step,
// returning an error naming the failing version; prior steps remain durably
// marked as applied or reverted.
func (r *Runner) Run(ctx context.Context, plan *Plan) error {
	for _, step := range plan.Steps {
		if err := r.runStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	m := step.Migration
	script := m.Up
	if step.Direction == DirectionDown {
		if !m.Reversible() {
			return fmt.Errorf("migration %s has no down script and cannot be reverted", m)
		}
		script = m.Down
	}

	r.logger.Debug("executing migration",
		"migration", m.String(), "direction", step.Direction)

	if _, err := r.d.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed executing %s migration %s: %w",
			step.Direction, m, err)
	}

	var err error
	if step.Direction == DirectionUp {
		err = r.hist.MarkApplied(ctx, m.Version)
	} else {
		err = r.hist.MarkReverted(ctx, m.Version)
	}
	if err != nil {
		return fmt.Errorf("failed recording %s migration %s: %w",
			step.Direction, m, err)
	}

	r.logger.Info("executed migration",
		"migration", m.String(), "direction", step.Direction)

	return nil
}
