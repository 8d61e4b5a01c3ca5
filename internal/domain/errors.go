package domain

import "github.com/rotisserie/eris"

// Error taxonomy for the valuation engine. Call sites attach context with
// eris.Wrap/Wrapf; callers discriminate with errors.Is.
var (
	// ErrConfiguration marks invalid or inconsistent input. A run that hits
	// it aborts immediately and returns no partial result.
	ErrConfiguration = eris.New("invalid configuration")

	// ErrDivisionUndefined marks a ratio that cannot be formed (for example
	// a percentage uplift over a zero baseline). The comparator never
	// returns it directly; it records an explicit undefined marker instead.
	ErrDivisionUndefined = eris.New("division undefined")
)
