package migrator

import "strings"

// Version is a unique token identifying a single migration. Versions are
// compared byte-wise as strings, never numerically, so timestamp-derived
// tokens of equal length sort chronologically.
type Version string

// Zero is the sentinel version representing the state before any migration
// was applied. It sorts before every real version.
const Zero Version = "0"

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to,
// or after other.
func (v Version) Compare(other Version) int {
	return strings.Compare(string(v), string(other))
}

// IsZero reports whether v is the zero sentinel.
func (v Version) IsZero() bool {
	return v == Zero
}

func (v Version) String() string {
	return string(v)
}
