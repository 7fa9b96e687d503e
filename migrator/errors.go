package migrator

import "fmt"

// DuplicateVersionError is returned when attempting to register a migration
// with a version that is already registered. The existing registration is
// left untouched.
type DuplicateVersionError struct {
	Version  Version
	Existing string
}

// Error returns a string representation of the error.
func (e DuplicateVersionError) Error() string {
	return fmt.Sprintf("version %s is already registered by migration '%s'",
		e.Version, e.Existing)
}

// UnknownVersionError is returned when a version is looked up or targeted
// that is not present in the registry.
type UnknownVersionError struct {
	Version Version
}

// Error returns a string representation of the error.
func (e UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown version %s", e.Version)
}

// UnresolvableError is returned when a migration's implementation cannot be
// resolved to runnable logic, e.g. a down script was discovered without a
// matching up script.
type UnresolvableError struct {
	Version Version
	Reason  string
}

// Error returns a string representation of the error.
func (e UnresolvableError) Error() string {
	return fmt.Sprintf("migration %s is unresolvable: %s", e.Version, e.Reason)
}
