package migrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planVersions(plan *Plan) []Version {
	if len(plan.Steps) == 0 {
		return nil
	}
	versions := make([]Version, len(plan.Steps))
	for i, step := range plan.Steps {
		versions[i] = step.Version
	}
	return versions
}

func TestPlannerPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		known     []Version
		applied   []Version
		direction Direction
		target    Version
		expPlan   []Version
		expErr    string
	}{
		{
			name:      "up/pending_around_applied",
			known:     []Version{"01", "02", "03", "04"},
			applied:   []Version{"02", "03"},
			direction: DirectionUp,
			target:    "04",
			expPlan:   []Version{"01", "04"},
		},
		{
			name:      "down/reverse_application_order",
			known:     []Version{"01", "02", "03", "04"},
			applied:   []Version{"02", "03"},
			direction: DirectionDown,
			target:    "01",
			expPlan:   []Version{"03", "02"},
		},
		{
			name:      "up/partial_target",
			known:     []Version{"01", "02", "03", "04"},
			applied:   []Version{"01"},
			direction: DirectionUp,
			target:    "03",
			expPlan:   []Version{"02", "03"},
		},
		{
			name:      "up/everything_applied",
			known:     []Version{"01", "02"},
			applied:   []Version{"01", "02"},
			direction: DirectionUp,
			target:    "02",
			expPlan:   nil,
		},
		{
			name:      "down/to_zero",
			known:     []Version{"01", "02", "03"},
			applied:   []Version{"01", "02", "03"},
			direction: DirectionDown,
			target:    Zero,
			expPlan:   []Version{"03", "02", "01"},
		},
		{
			name:      "down/nothing_applied",
			known:     []Version{"01", "02"},
			applied:   nil,
			direction: DirectionDown,
			target:    Zero,
			expPlan:   nil,
		},
		{
			name:      "up/applied_but_unavailable_excluded",
			known:     []Version{"01", "03"},
			applied:   []Version{"02"},
			direction: DirectionUp,
			target:    "03",
			expPlan:   []Version{"01", "03"},
		},
		{
			name:      "down/applied_but_unavailable_excluded",
			known:     []Version{"01", "03"},
			applied:   []Version{"01", "02", "03"},
			direction: DirectionDown,
			target:    Zero,
			expPlan:   []Version{"03", "01"},
		},
		{
			name:      "up/empty_registry_zero_target",
			known:     nil,
			applied:   nil,
			direction: DirectionUp,
			target:    Zero,
			expPlan:   nil,
		},
		{
			name:      "err/unknown_target",
			known:     []Version{"01"},
			applied:   nil,
			direction: DirectionUp,
			target:    "99",
			expErr:    "unknown version 99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			planner := NewPlanner(
				newTestRegistry(tt.known...), newMemHistory(tt.applied...),
			)

			plan, err := planner.Plan(t.Context(), tt.direction, tt.target)
			if tt.expErr != "" {
				assert.ErrorContains(t, err, tt.expErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.direction, plan.Direction)
			assert.Equal(t, tt.target, plan.Target)
			assert.Equal(t, tt.expPlan, planVersions(plan))
			assert.Equal(t, len(tt.expPlan) == 0, plan.Empty())
		})
	}
}

func TestPlannerPlanIdempotent(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(
		newTestRegistry("01", "02", "03"), newMemHistory("01"),
	)

	first, err := planner.Plan(t.Context(), DirectionUp, "03")
	require.NoError(t, err)
	second, err := planner.Plan(t.Context(), DirectionUp, "03")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlannerCurrent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		known   []Version
		applied []Version
		exp     Version
	}{
		{"nothing_applied", []Version{"01", "02"}, nil, Zero},
		{"latest_applied", []Version{"01", "02"}, []Version{"01", "02"}, "02"},
		{"gap", []Version{"01", "02", "03"}, []Version{"01", "03"}, "03"},
		{"unavailable_ignored", []Version{"01"}, []Version{"01", "99"}, "01"},
		{"empty_registry", nil, []Version{"99"}, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			planner := NewPlanner(
				newTestRegistry(tt.known...), newMemHistory(tt.applied...),
			)
			current, err := planner.Current(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.exp, current)
		})
	}
}
