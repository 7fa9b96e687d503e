package migrator

import "context"

// ResolveTarget resolves a target expression to a concrete version. The
// expression may be a symbolic alias ("first", "latest", "current", "prev",
// "next"), a relative delta ("+2", "-1") resolved against the current
// version, the zero sentinel, or a literal registered version. It returns
// false if the expression resolves to no version, either because it names an
// unknown version or because a relative reference navigates past the end of
// history.
func (p *Planner) ResolveTarget(ctx context.Context, expr string) (Version, bool, error) {
	switch expr {
	case "first", string(Zero):
		return Zero, true, nil
	case "latest":
		return p.reg.Latest(), true, nil
	}

	current, err := p.Current(ctx)
	if err != nil {
		return Zero, false, err
	}

	nav := NewNavigator(p.reg)
	var (
		v  Version
		ok bool
	)
	switch expr {
	case "current":
		return current, true, nil
	case "prev", "previous":
		v, ok = nav.Previous(current)
	case "next":
		v, ok = nav.Next(current)
	default:
		if v, ok = nav.ResolveDelta(current, expr); !ok {
			v = Version(expr)
			ok = p.reg.Has(v)
		}
	}

	return v, ok, nil
}
