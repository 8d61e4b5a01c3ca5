package calculation

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

// DCFEngine projects free cash flow from a margin series and discounts it to
// an enterprise, equity and per-share value. It is a pure function of its
// inputs: the two scenarios of a run are two invocations of the same code so
// the comparison is like-for-like by construction.
type DCFEngine struct{}

// NewDCFEngine creates a DCF engine.
func NewDCFEngine() *DCFEngine {
	return &DCFEngine{}
}

// WACC returns the weighted average cost of capital with the debt leg
// tax-shielded.
func (e *DCFEngine) WACC(fin *domain.FinancialInputs) decimal.Decimal {
	equityLeg := fin.EquityWeight.Mul(fin.CostOfEquity)
	debtLeg := fin.DebtWeight.Mul(fin.CostOfDebt).Mul(decimalOne.Sub(fin.TaxRate))
	return equityLeg.Add(debtLeg)
}

// Run values one scenario. The margin series must cover the full horizon;
// revenueGrowth compounds revenue annually (zero holds it flat), and
// terminalGrowth feeds the Gordon Growth terminal value.
func (e *DCFEngine) Run(name string, fin *domain.FinancialInputs, margins MarginSeries, revenueGrowth, terminalGrowth decimal.Decimal) (domain.ScenarioValuation, []domain.Warning, error) {
	wacc := e.WACC(fin)
	return e.runWithWACC(name, fin, margins, revenueGrowth, terminalGrowth, wacc)
}

// runWithWACC is the Run body with the discount rate supplied explicitly so
// the sensitivity sweep can override it.
func (e *DCFEngine) runWithWACC(name string, fin *domain.FinancialInputs, margins MarginSeries, revenueGrowth, terminalGrowth, wacc decimal.Decimal) (domain.ScenarioValuation, []domain.Warning, error) {
	horizon := len(margins.EBIT)
	if horizon < 1 || len(margins.Gross) != horizon {
		return domain.ScenarioValuation{}, nil, eris.Wrap(domain.ErrConfiguration, "margin series must be non-empty and of equal length")
	}
	if fin.SharesOutstanding.LessThanOrEqual(decimalZero) {
		return domain.ScenarioValuation{}, nil, eris.Wrap(domain.ErrConfiguration, "shares outstanding must be positive")
	}
	// Gordon Growth diverges when the discount rate does not exceed the
	// perpetuity growth rate; refuse to compute rather than emit a negative
	// or infinite terminal value.
	if wacc.LessThanOrEqual(terminalGrowth) {
		return domain.ScenarioValuation{}, nil, eris.Wrapf(domain.ErrConfiguration,
			"WACC (%s) must exceed terminal growth (%s)", wacc.StringFixed(4), terminalGrowth.StringFixed(4))
	}

	sv := domain.ScenarioValuation{
		Name:  name,
		WACC:  wacc,
		Years: make([]domain.CashFlowYear, 0, horizon),
	}

	onePlusWACC := decimalOne.Add(wacc)
	onePlusGrowth := decimalOne.Add(revenueGrowth)
	afterTax := decimalOne.Sub(fin.TaxRate)

	revenue := fin.Revenue
	priorNWC := fin.Revenue.Mul(fin.NWCPercent) // year-0 working capital base
	pvOfFCF := decimalZero
	lastFCF := decimalZero
	lastDF := decimalOne

	for year := 1; year <= horizon; year++ {
		revenue = revenue.Mul(onePlusGrowth)

		grossMargin := margins.Gross[year-1]
		ebitMargin := margins.EBIT[year-1]

		cogs := revenue.Mul(decimalOne.Sub(grossMargin))
		ebit := revenue.Mul(ebitMargin)
		nopat := ebit.Mul(afterTax)

		depreciation := revenue.Mul(fin.DepreciationPercent)
		capex := revenue.Mul(fin.CapExPercent)

		nwc := revenue.Mul(fin.NWCPercent)
		nwcChange := nwc.Sub(priorNWC)
		priorNWC = nwc

		fcf := nopat.Add(depreciation).Sub(capex).Sub(nwcChange)

		df := decimalOne.Div(onePlusWACC.Pow(decimal.NewFromInt(int64(year))))
		discounted := fcf.Mul(df)
		pvOfFCF = pvOfFCF.Add(discounted)
		lastFCF = fcf
		lastDF = df

		sv.Years = append(sv.Years, domain.CashFlowYear{
			Year:           year,
			Revenue:        revenue,
			COGS:           cogs,
			GrossMargin:    grossMargin,
			EBITMargin:     ebitMargin,
			EBIT:           ebit,
			NOPAT:          nopat,
			Depreciation:   depreciation,
			CapEx:          capex,
			NWCChange:      nwcChange,
			FreeCashFlow:   fcf,
			DiscountFactor: df,
			DiscountedFCF:  discounted,
		})
	}

	terminalValue := lastFCF.Mul(decimalOne.Add(terminalGrowth)).Div(wacc.Sub(terminalGrowth))
	pvOfTerminal := terminalValue.Mul(lastDF)

	var warnings []domain.Warning
	if lastFCF.LessThan(decimalZero) {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnNegativeTerminal,
			Message: "terminal-year free cash flow is negative; terminal value capitalizes a cash outflow",
		})
	}

	enterpriseValue := pvOfFCF.Add(pvOfTerminal)
	equityValue := enterpriseValue.Sub(fin.NetDebt)

	sv.Result = domain.ValuationResult{
		PVOfFCF:         pvOfFCF,
		TerminalValue:   terminalValue,
		PVOfTerminal:    pvOfTerminal,
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		PricePerShare:   equityValue.Div(fin.SharesOutstanding),
	}

	return sv, warnings, nil
}
