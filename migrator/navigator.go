package migrator

import "strconv"

// Navigator resolves positions relative to a version within the ordered
// sequence of known versions, prefixed with the zero sentinel. Navigating
// past either end of the sequence is a normal outcome, reported by the
// boolean return rather than an error.
type Navigator struct {
	reg *Registry
}

// NewNavigator returns a Navigator over the given registry.
func NewNavigator(reg *Registry) *Navigator {
	return &Navigator{reg: reg}
}

// ResolveRelative returns the version delta positions away from current in
// the sequence ["0", v1, ..., vn]. It returns false if current is not in
// that sequence, or if the resulting position falls outside of it.
func (n *Navigator) ResolveRelative(current Version, delta int) (Version, bool) {
	seq := append([]Version{Zero}, n.reg.Versions()...)

	idx := -1
	for i, v := range seq {
		if v == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", false
	}

	idx += delta
	if idx < 0 || idx >= len(seq) {
		return "", false
	}

	return seq[idx], true
}

// ResolveDelta resolves a relative version expression like "+2" or "-1"
// against current. A token without a leading sign, or with a zero or
// negative magnitude after the sign, is not a delta expression and yields
// false without attempting resolution.
func (n *Navigator) ResolveDelta(current Version, token string) (Version, bool) {
	if len(token) < 2 {
		return "", false
	}

	sign := token[0]
	if sign != '+' && sign != '-' {
		return "", false
	}

	magnitude, err := strconv.Atoi(token[1:])
	if err != nil || magnitude <= 0 {
		return "", false
	}

	if sign == '-' {
		magnitude = -magnitude
	}

	return n.ResolveRelative(current, magnitude)
}

// Previous returns the version immediately before current.
func (n *Navigator) Previous(current Version) (Version, bool) {
	return n.ResolveRelative(current, -1)
}

// Next returns the version immediately after current.
func (n *Navigator) Next(current Version) (Version, bool) {
	return n.ResolveRelative(current, 1)
}
