package calculation

import "github.com/shopspring/decimal"

// ProgressSchedule maps a projection year (1..horizon) to the fraction of
// the total ESG benefit realized by that year. Implementations must be
// monotonic non-decreasing and bounded in [0, 1], with Progress(horizon,
// horizon) exactly 1.
type ProgressSchedule interface {
	Progress(year, horizon int) decimal.Decimal
}

// LinearSchedule phases benefits in evenly: year/horizon. Years at or before
// zero carry no benefit; years at or past the horizon carry the full benefit.
type LinearSchedule struct{}

// Progress implements ProgressSchedule.
func (LinearSchedule) Progress(year, horizon int) decimal.Decimal {
	if horizon < 1 || year <= 0 {
		return decimal.Zero
	}
	if year >= horizon {
		return decimalOne
	}
	return decimal.NewFromInt(int64(year)).Div(decimal.NewFromInt(int64(horizon)))
}
