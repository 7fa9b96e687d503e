package migrator

import "slices"

// Registry is the in-memory set of known migrations, keyed by version. The
// version index is kept in ascending order on every insert, so iteration
// order always reflects sorted order regardless of registration order.
//
// A Registry is populated once at startup and read-only afterwards. It is
// not safe for concurrent use.
type Registry struct {
	units    map[Version]*Migration
	versions []Version // ascending
}

// NewRegistry returns an empty migration registry.
func NewRegistry() *Registry {
	return &Registry{units: map[Version]*Migration{}}
}

// Register adds a migration to the registry. It returns DuplicateVersionError
// if a migration with the same version is already registered, and
// UnresolvableError if the migration has no up script.
func (r *Registry) Register(m *Migration) error {
	if m.Version == "" || m.Version == Zero {
		return UnresolvableError{Version: m.Version, Reason: "invalid version"}
	}
	if m.Up == "" {
		return UnresolvableError{Version: m.Version, Reason: "no up script"}
	}
	if existing, ok := r.units[m.Version]; ok {
		return DuplicateVersionError{Version: m.Version, Existing: existing.String()}
	}

	r.units[m.Version] = m
	idx, _ := slices.BinarySearch(r.versions, m.Version)
	r.versions = slices.Insert(r.versions, idx, m.Version)

	return nil
}

// RegisterAll registers migrations in the given order. It stops at the first
// failure; migrations registered before the failing one remain committed.
// Callers needing all-or-nothing behavior must validate beforehand.
func (r *Registry) RegisterAll(migrations []*Migration) error {
	for _, m := range migrations {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the migration registered under the given version, or
// UnknownVersionError if there is none.
func (r *Registry) Get(version Version) (*Migration, error) {
	m, ok := r.units[version]
	if !ok {
		return nil, UnknownVersionError{Version: version}
	}
	return m, nil
}

// Has reports whether a migration is registered under the given version.
func (r *Registry) Has(version Version) bool {
	_, ok := r.units[version]
	return ok
}

// All returns all registered migrations in ascending version order.
func (r *Registry) All() []*Migration {
	migrations := make([]*Migration, len(r.versions))
	for i, v := range r.versions {
		migrations[i] = r.units[v]
	}
	return migrations
}

// Versions returns all registered versions in ascending order.
func (r *Registry) Versions() []Version {
	return slices.Clone(r.versions)
}

// Count returns the number of registered migrations.
func (r *Registry) Count() int {
	return len(r.versions)
}

// Latest returns the greatest registered version, or the zero sentinel if
// the registry is empty.
func (r *Registry) Latest() Version {
	if len(r.versions) == 0 {
		return Zero
	}
	return r.versions[len(r.versions)-1]
}
