package migrator

import (
	"context"
	"fmt"
)

// Direction indicates whether migrations are applied or reverted.
type Direction string

// Migration directions.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Step is a single entry of a migration plan.
type Step struct {
	Version   Version
	Migration *Migration
	Direction Direction
}

// Plan is the ordered sequence of migrations to execute to move the database
// from its current state to the target version.
type Plan struct {
	Direction Direction
	Target    Version
	Steps     []Step
}

// Empty reports whether the plan contains no steps.
func (p *Plan) Empty() bool {
	return len(p.Steps) == 0
}

// Planner computes migration plans and state summaries from a registry and
// the applied-version history.
type Planner struct {
	reg  *Registry
	hist History
}

// NewPlanner returns a Planner over the given registry and history.
func NewPlanner(reg *Registry, hist History) *Planner {
	return &Planner{reg: reg, hist: hist}
}

// Plan computes the ordered list of migrations to execute to reach target.
//
// For the up direction the plan contains every unapplied migration with a
// version not greater than target, in ascending order. For the down
// direction it contains every applied migration with a version greater than
// target, in descending order, so migrations are reverted in reverse of the
// order they were applied.
//
// Applied versions that are missing from the registry never enter a plan;
// they are surfaced separately by Status. A target that is neither a
// registered version nor the zero sentinel fails with UnknownVersionError
// before any computation. Plan is a pure function of the registry and the
// applied set, and never mutates either.
func (p *Planner) Plan(ctx context.Context, dir Direction, target Version) (*Plan, error) {
	if !target.IsZero() && !p.reg.Has(target) {
		return nil, UnknownVersionError{Version: target}
	}

	applied, err := p.hist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed listing applied versions: %w", err)
	}

	plan := &Plan{Direction: dir, Target: target}
	all := p.reg.All()

	switch dir {
	case DirectionUp:
		for _, m := range all {
			if _, ok := applied[m.Version]; ok {
				continue
			}
			if m.Version.Compare(target) > 0 {
				break
			}
			plan.Steps = append(plan.Steps, Step{
				Version: m.Version, Migration: m, Direction: DirectionUp,
			})
		}
	case DirectionDown:
		for i := len(all) - 1; i >= 0; i-- {
			m := all[i]
			if m.Version.Compare(target) <= 0 {
				break
			}
			if _, ok := applied[m.Version]; !ok {
				continue
			}
			plan.Steps = append(plan.Steps, Step{
				Version: m.Version, Migration: m, Direction: DirectionDown,
			})
		}
	default:
		return nil, fmt.Errorf("invalid migration direction '%s'", dir)
	}

	return plan, nil
}

// Current returns the greatest applied version known to the registry, or the
// zero sentinel if no known version has been applied.
func (p *Planner) Current(ctx context.Context) (Version, error) {
	applied, err := p.hist.List(ctx)
	if err != nil {
		return Zero, fmt.Errorf("failed listing applied versions: %w", err)
	}

	versions := p.reg.Versions()
	for i := len(versions) - 1; i >= 0; i-- {
		if _, ok := applied[versions[i]]; ok {
			return versions[i], nil
		}
	}

	return Zero, nil
}
