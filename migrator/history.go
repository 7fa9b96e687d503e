package migrator

import "context"

// History is the durable record of which versions have been applied to the
// target database. The store provides no ordering guarantee; order is always
// re-derived from the registry. The applied set is mutated during plan
// execution, so it must be read fresh at the start of each computation and
// never cached across calls.
type History interface {
	// List returns the set of applied versions.
	List(ctx context.Context) (map[Version]struct{}, error)
	// Count returns the number of applied versions.
	Count(ctx context.Context) (int, error)
	// Contains reports whether the version is marked as applied.
	Contains(ctx context.Context, version Version) (bool, error)
	// MarkApplied records the version as applied.
	MarkApplied(ctx context.Context, version Version) error
	// MarkReverted removes the applied record for the version.
	MarkReverted(ctx context.Context, version Version) error
}
