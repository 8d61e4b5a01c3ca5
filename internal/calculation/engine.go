// Package calculation implements the valuation engine: progressive
// ESG-to-margin translation, the DCF projection, and the orchestration that
// turns one configuration into a full valuation report.
package calculation

import (
	"context"

	"github.com/ecovaluate/esgval/internal/compare"
	"github.com/ecovaluate/esgval/internal/domain"
	"github.com/ecovaluate/esgval/internal/waterfall"
)

// ValuationEngine runs the full pipeline: margin projection, two DCF runs,
// the uplift comparison and the waterfall decomposition. It holds no state
// between invocations; concurrent runs over independent inputs are safe.
type ValuationEngine struct {
	Projector  *MarginProjector
	DCF        *DCFEngine
	Comparator *compare.Comparator
}

// NewValuationEngine creates an engine with the research coefficient table
// and a linear phase-in schedule.
func NewValuationEngine() *ValuationEngine {
	return NewValuationEngineWithCoefficients(domain.DefaultCoefficients())
}

// NewValuationEngineWithCoefficients creates an engine with an explicit
// coefficient table, so tests can inject substitutes.
func NewValuationEngineWithCoefficients(coefficients domain.CoefficientTable) *ValuationEngine {
	return &ValuationEngine{
		Projector:  NewMarginProjector(coefficients),
		DCF:        NewDCFEngine(),
		Comparator: compare.NewComparator(),
	}
}

// RunValuation executes one model run. The configuration is validated first;
// any violation aborts the run with no partial result. The returned report
// is a fresh value object each call.
func (ve *ValuationEngine) RunValuation(ctx context.Context, cfg *domain.Configuration) (*domain.ValuationReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	horizon := cfg.EffectiveHorizon()
	terminalGrowth := cfg.EffectiveTerminalGrowth()
	fin := &cfg.Financials

	projection, err := ve.Projector.Project(fin, cfg.ESG, horizon)
	if err != nil {
		return nil, err
	}

	baseline, baseWarnings, err := ve.DCF.Run(domain.ScenarioBaseline, fin, projection.Baseline, cfg.RevenueGrowth, terminalGrowth)
	if err != nil {
		return nil, err
	}
	esg, esgWarnings, err := ve.DCF.Run(domain.ScenarioESG, fin, projection.ESG, cfg.RevenueGrowth, terminalGrowth)
	if err != nil {
		return nil, err
	}

	comparison := ve.Comparator.Compare(baseline.Result, esg.Result)

	contributions := make([]waterfall.Contribution, 0, len(projection.Contributions))
	for _, c := range projection.Contributions {
		contributions = append(contributions, waterfall.Contribution{
			Factor:      c.Factor,
			Name:        c.Name,
			Improvement: c.Improvement,
			Weight:      c.MarginShift.Abs(),
		})
	}
	entries := waterfall.Allocate(contributions, comparison.EnterpriseValue.Absolute)

	report := &domain.ValuationReport{
		Company:         cfg.Company,
		Horizon:         horizon,
		WACC:            baseline.WACC,
		TerminalGrowth:  terminalGrowth,
		RevenueGrowth:   cfg.RevenueGrowth,
		YearProjections: buildYearProjections(projection, baseline, esg),
		Baseline:        baseline,
		ESG:             esg,
		Comparison:      comparison,
		Waterfall:       entries,
	}
	report.Warnings = append(report.Warnings, projection.Warnings...)
	report.Warnings = append(report.Warnings, baseWarnings...)
	report.Warnings = append(report.Warnings, esgWarnings...)

	return report, nil
}

// buildYearProjections zips the margin series and the two cash-flow series
// into the per-year comparison rows the presentation layer renders.
func buildYearProjections(projection *MarginProjection, baseline, esg domain.ScenarioValuation) []domain.YearProjection {
	years := make([]domain.YearProjection, 0, projection.Horizon)
	for i := 0; i < projection.Horizon; i++ {
		years = append(years, domain.YearProjection{
			Year:             i + 1,
			Progress:         projection.Progress[i],
			BaselineGross:    projection.Baseline.Gross[i],
			ESGGross:         projection.ESG.Gross[i],
			BaselineEBIT:     projection.Baseline.EBIT[i],
			ESGEBIT:          projection.ESG.EBIT[i],
			BaselineFreeCash: baseline.Years[i].FreeCashFlow,
			ESGFreeCash:      esg.Years[i].FreeCashFlow,
		})
	}
	return years
}
