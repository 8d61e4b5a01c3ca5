package calculation

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

// SensitivityRequest describes a two-way sweep of the discount rate and the
// terminal growth rate around their configured values.
type SensitivityRequest struct {
	WACCRange   decimal.Decimal // absolute half-width of the WACC axis
	GrowthRange decimal.Decimal // absolute half-width of the terminal growth axis
	Steps       int             // points per axis; made odd so the center is included
}

// SensitivityCell is one grid point of the sweep. Cells where the Gordon
// Growth model is undefined (WACC <= growth) are marked invalid instead of
// failing the whole sweep.
type SensitivityCell struct {
	WACC            decimal.Decimal `json:"wacc"`
	TerminalGrowth  decimal.Decimal `json:"terminalGrowth"`
	EnterpriseValue decimal.Decimal `json:"enterpriseValue"`
	PricePerShare   decimal.Decimal `json:"pricePerShare"`
	Valid           bool            `json:"valid"`
}

// SensitivityResult is the sweep output over the ESG-adjusted scenario.
// Rows vary WACC, columns vary terminal growth.
type SensitivityResult struct {
	Company    string              `json:"company"`
	BaseWACC   decimal.Decimal     `json:"baseWacc"`
	BaseGrowth decimal.Decimal     `json:"baseGrowth"`
	WACCs      []decimal.Decimal   `json:"waccs"`
	Growths    []decimal.Decimal   `json:"growths"`
	Cells      [][]SensitivityCell `json:"cells"`
}

// RunSensitivity sweeps the ESG-adjusted scenario across the requested WACC
// and terminal-growth grid. The configuration must be valid; each grid point
// reuses the same margin projection.
func (ve *ValuationEngine) RunSensitivity(ctx context.Context, cfg *domain.Configuration, req SensitivityRequest) (*SensitivityResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if req.Steps < 1 {
		return nil, eris.Wrapf(domain.ErrConfiguration, "sensitivity steps must be at least 1 (got %d)", req.Steps)
	}
	if req.WACCRange.IsNegative() || req.GrowthRange.IsNegative() {
		return nil, eris.Wrap(domain.ErrConfiguration, "sensitivity ranges cannot be negative")
	}

	horizon := cfg.EffectiveHorizon()
	fin := &cfg.Financials

	projection, err := ve.Projector.Project(fin, cfg.ESG, horizon)
	if err != nil {
		return nil, err
	}

	baseWACC := ve.DCF.WACC(fin)
	baseGrowth := cfg.EffectiveTerminalGrowth()

	result := &SensitivityResult{
		Company:    cfg.Company,
		BaseWACC:   baseWACC,
		BaseGrowth: baseGrowth,
		WACCs:      axis(baseWACC, req.WACCRange, req.Steps),
		Growths:    axis(baseGrowth, req.GrowthRange, req.Steps),
	}

	for _, wacc := range result.WACCs {
		row := make([]SensitivityCell, 0, len(result.Growths))
		for _, growth := range result.Growths {
			cell := SensitivityCell{WACC: wacc, TerminalGrowth: growth}
			sv, _, runErr := ve.DCF.runWithWACC(domain.ScenarioESG, fin, projection.ESG, cfg.RevenueGrowth, growth, wacc)
			if runErr == nil {
				cell.EnterpriseValue = sv.Result.EnterpriseValue
				cell.PricePerShare = sv.Result.PricePerShare
				cell.Valid = true
			}
			row = append(row, cell)
		}
		result.Cells = append(result.Cells, row)
	}

	return result, nil
}

// axis builds a symmetric grid of 2n+1 points centered on base, where n
// rounds Steps up to keep the center on the grid.
func axis(base, halfWidth decimal.Decimal, steps int) []decimal.Decimal {
	n := steps / 2
	if n < 1 && !halfWidth.IsZero() {
		n = 1
	}
	if halfWidth.IsZero() {
		return []decimal.Decimal{base}
	}
	step := halfWidth.Div(decimal.NewFromInt(int64(n)))
	points := make([]decimal.Decimal, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		points = append(points, base.Add(step.Mul(decimal.NewFromInt(int64(i)))))
	}
	return points
}
