package domain

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

var (
	decimalZero = decimal.Zero
	decimalOne  = decimal.NewFromInt(1)

	// Weight sum slack: equity and debt weights must add to 1 within this.
	weightTolerance = decimal.New(1, -9)
)

// FinancialInputs holds the capital-structure and operating assumptions for
// one model run. Monetary figures are in millions of the reporting currency;
// every field named *Percent and every rate is a fraction of revenue (or a
// fraction of capital for the weights), not a percent string.
type FinancialInputs struct {
	Revenue decimal.Decimal `yaml:"revenue" json:"revenue"` // $M, first projection year basis

	COGSPercent  decimal.Decimal `yaml:"cogs_percent" json:"cogsPercent"`
	SGAPercent   decimal.Decimal `yaml:"sga_percent" json:"sgaPercent"`
	RDPercent    decimal.Decimal `yaml:"rd_percent" json:"rdPercent"`
	OtherOpexPct decimal.Decimal `yaml:"other_opex_percent" json:"otherOpexPercent"`

	CapExPercent        decimal.Decimal `yaml:"capex_percent" json:"capexPercent"`
	DepreciationPercent decimal.Decimal `yaml:"depreciation_percent" json:"depreciationPercent"`
	NWCPercent          decimal.Decimal `yaml:"nwc_percent" json:"nwcPercent"`

	TaxRate      decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
	CostOfEquity decimal.Decimal `yaml:"cost_of_equity" json:"costOfEquity"`
	CostOfDebt   decimal.Decimal `yaml:"cost_of_debt" json:"costOfDebt"`
	EquityWeight decimal.Decimal `yaml:"equity_weight" json:"equityWeight"`
	DebtWeight   decimal.Decimal `yaml:"debt_weight" json:"debtWeight"`

	NetDebt           decimal.Decimal `yaml:"net_debt" json:"netDebt"`                     // $M
	SharesOutstanding decimal.Decimal `yaml:"shares_outstanding" json:"sharesOutstanding"` // millions
}

// Validate checks field-level invariants at construction time. Violations are
// configuration errors: the run must abort rather than silently clamp.
func (fi *FinancialInputs) Validate() error {
	if fi.Revenue.LessThanOrEqual(decimalZero) {
		return eris.Wrap(ErrConfiguration, "revenue must be positive")
	}
	if fi.SharesOutstanding.LessThanOrEqual(decimalZero) {
		return eris.Wrap(ErrConfiguration, "shares outstanding must be positive")
	}

	fractions := []struct {
		name  string
		value decimal.Decimal
	}{
		{"cogs_percent", fi.COGSPercent},
		{"sga_percent", fi.SGAPercent},
		{"rd_percent", fi.RDPercent},
		{"other_opex_percent", fi.OtherOpexPct},
		{"capex_percent", fi.CapExPercent},
		{"depreciation_percent", fi.DepreciationPercent},
		{"nwc_percent", fi.NWCPercent},
		{"tax_rate", fi.TaxRate},
		{"cost_of_equity", fi.CostOfEquity},
		{"cost_of_debt", fi.CostOfDebt},
		{"equity_weight", fi.EquityWeight},
		{"debt_weight", fi.DebtWeight},
	}
	for _, f := range fractions {
		if f.value.LessThan(decimalZero) || f.value.GreaterThan(decimalOne) {
			return eris.Wrapf(ErrConfiguration, "%s must be between 0 and 1 (got %s)", f.name, f.value)
		}
	}

	weightSum := fi.EquityWeight.Add(fi.DebtWeight)
	if weightSum.Sub(decimalOne).Abs().GreaterThan(weightTolerance) {
		return eris.Wrapf(ErrConfiguration, "equity and debt weights must sum to 1 (got %s)", weightSum)
	}

	return nil
}

// BaseGrossMargin returns the unadjusted gross margin fraction, 1 - COGS%.
func (fi *FinancialInputs) BaseGrossMargin() decimal.Decimal {
	return decimalOne.Sub(fi.COGSPercent)
}

// BaseEBITMargin returns the unadjusted EBIT margin fraction: gross margin
// less SG&A, R&D and other operating expense.
func (fi *FinancialInputs) BaseEBITMargin() decimal.Decimal {
	return fi.BaseGrossMargin().
		Sub(fi.SGAPercent).
		Sub(fi.RDPercent).
		Sub(fi.OtherOpexPct)
}
