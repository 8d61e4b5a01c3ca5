package calculation

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
	decimalNegOne  = decimal.NewFromInt(-1)
)

// FactorContribution is one factor's fully-realized margin shift: the
// coefficient applied to the whole current-to-target gap, in percentage
// points, before any progress phasing.
type FactorContribution struct {
	Factor      domain.Factor
	Name        string
	Target      domain.MarginTarget
	Improvement decimal.Decimal // target - current
	MarginShift decimal.Decimal // coefficient x improvement, percentage points
}

// MarginSeries holds per-year gross and EBIT margin fractions for one
// scenario, indexed year-1 first.
type MarginSeries struct {
	Gross []decimal.Decimal
	EBIT  []decimal.Decimal
}

// MarginProjection is the margin projector's output: flat baseline series,
// progressively adjusted ESG series, the schedule that produced them, and
// the per-factor contributions the waterfall later weighs.
type MarginProjection struct {
	Horizon       int
	Progress      []decimal.Decimal
	Baseline      MarginSeries
	ESG           MarginSeries
	Contributions []FactorContribution
	Warnings      []domain.Warning
}

// MarginProjector turns ESG current/target gaps into per-year margin series
// using a coefficient table and a progress schedule. Both are injected so
// tests can substitute them.
type MarginProjector struct {
	Coefficients domain.CoefficientTable
	Schedule     ProgressSchedule
}

// NewMarginProjector creates a projector with the given coefficient table
// and a linear phase-in schedule.
func NewMarginProjector(coefficients domain.CoefficientTable) *MarginProjector {
	return &MarginProjector{
		Coefficients: coefficients,
		Schedule:     LinearSchedule{},
	}
}

// Contributions computes the fully-realized margin shift for every metric.
// Each metric must have a coefficient; a metric without one is a
// configuration error rather than a silently ignored input.
func (mp *MarginProjector) Contributions(metrics []domain.ESGMetric) ([]FactorContribution, error) {
	contributions := make([]FactorContribution, 0, len(metrics))
	for _, m := range metrics {
		coef, ok := mp.Coefficients.Get(m.Factor)
		if !ok {
			return nil, eris.Wrapf(domain.ErrConfiguration, "no coefficient for ESG factor %q", m.Factor)
		}
		delta := m.Delta()
		contributions = append(contributions, FactorContribution{
			Factor:      m.Factor,
			Name:        m.Name,
			Target:      coef.Target,
			Improvement: delta,
			MarginShift: coef.Value.Mul(delta),
		})
	}
	return contributions, nil
}

// Project produces the baseline and ESG-adjusted margin series over the
// horizon. The baseline series repeats the unadjusted base margins; the ESG
// series adds the phased-in coefficient shifts. The gross shift carries
// through to the EBIT margin because EBIT sits below gross profit.
func (mp *MarginProjector) Project(fin *domain.FinancialInputs, metrics []domain.ESGMetric, horizon int) (*MarginProjection, error) {
	if horizon < 1 {
		return nil, eris.Wrapf(domain.ErrConfiguration, "horizon must be at least 1 (got %d)", horizon)
	}

	contributions, err := mp.Contributions(metrics)
	if err != nil {
		return nil, err
	}

	grossShift := decimalZero
	ebitShift := decimalZero
	for _, c := range contributions {
		switch c.Target {
		case domain.MarginGross:
			grossShift = grossShift.Add(c.MarginShift)
		case domain.MarginEBIT:
			ebitShift = ebitShift.Add(c.MarginShift)
		default:
			return nil, eris.Wrapf(domain.ErrConfiguration, "coefficient for %q targets unknown margin %q", c.Factor, c.Target)
		}
	}

	baseGross := fin.BaseGrossMargin()
	baseEBIT := fin.BaseEBITMargin()

	proj := &MarginProjection{
		Horizon:       horizon,
		Progress:      make([]decimal.Decimal, horizon),
		Baseline:      MarginSeries{Gross: make([]decimal.Decimal, horizon), EBIT: make([]decimal.Decimal, horizon)},
		ESG:           MarginSeries{Gross: make([]decimal.Decimal, horizon), EBIT: make([]decimal.Decimal, horizon)},
		Contributions: contributions,
	}

	for i := 0; i < horizon; i++ {
		year := i + 1
		progress := mp.Schedule.Progress(year, horizon)
		proj.Progress[i] = progress

		proj.Baseline.Gross[i] = baseGross
		proj.Baseline.EBIT[i] = baseEBIT

		// Shifts are percentage points; divide by 100 for fractions.
		grossDelta := grossShift.Mul(progress).Div(decimalHundred)
		ebitDelta := ebitShift.Mul(progress).Div(decimalHundred)
		proj.ESG.Gross[i] = baseGross.Add(grossDelta)
		proj.ESG.EBIT[i] = baseEBIT.Add(grossDelta).Add(ebitDelta)

		proj.Warnings = append(proj.Warnings, marginSanityWarnings(year, proj.ESG.Gross[i], proj.ESG.EBIT[i])...)
	}

	return proj, nil
}

// marginSanityWarnings flags margins outside [-1, 1]. Extreme ESG inputs can
// push the additive adjustment implausible; that is a warning for the
// presentation layer, not a hard failure.
func marginSanityWarnings(year int, gross, ebit decimal.Decimal) []domain.Warning {
	var warnings []domain.Warning
	if gross.GreaterThan(decimalOne) || gross.LessThan(decimalNegOne) {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnMarginOutOfRange,
			Message: fmt.Sprintf("year %d ESG gross margin %s is outside [-1, 1]", year, gross.StringFixed(4)),
		})
	}
	if ebit.GreaterThan(decimalOne) || ebit.LessThan(decimalNegOne) {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnMarginOutOfRange,
			Message: fmt.Sprintf("year %d ESG EBIT margin %s is outside [-1, 1]", year, ebit.StringFixed(4)),
		})
	}
	return warnings
}
