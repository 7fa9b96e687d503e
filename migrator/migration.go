package migrator

import "fmt"

// Migration is a single schema change unit: a version paired with the SQL
// scripts that apply and revert it. Migrations are immutable once registered.
type Migration struct {
	Version Version
	Name    string
	// Up is the SQL script that applies the migration. A migration without
	// an up script cannot be registered.
	Up string
	// Down is the SQL script that reverts the migration. It may be empty,
	// in which case the migration is irreversible.
	Down string
}

// String returns the identifier of the migration as it appears in filenames.
func (m *Migration) String() string {
	if m.Name == "" {
		return string(m.Version)
	}
	return fmt.Sprintf("%s-%s", m.Version, m.Name)
}

// Reversible reports whether the migration has a down script.
func (m *Migration) Reversible() bool {
	return m.Down != ""
}
