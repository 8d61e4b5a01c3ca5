package domain

import "github.com/shopspring/decimal"

// Scenario names the two margin series every run produces.
const (
	ScenarioBaseline = "baseline"
	ScenarioESG      = "esg"
)

// YearProjection is the per-year margin view of one run: both scenarios side
// by side, plus the progress fraction that produced the ESG columns.
// Immutable once computed; ordered by Year (1..horizon).
type YearProjection struct {
	Year             int             `json:"year"`
	Progress         decimal.Decimal `json:"progress"`
	BaselineGross    decimal.Decimal `json:"baselineGrossMargin"`
	ESGGross         decimal.Decimal `json:"esgGrossMargin"`
	BaselineEBIT     decimal.Decimal `json:"baselineEbitMargin"`
	ESGEBIT          decimal.Decimal `json:"esgEbitMargin"`
	BaselineFreeCash decimal.Decimal `json:"baselineFcf"`
	ESGFreeCash      decimal.Decimal `json:"esgFcf"`
}

// CashFlowYear is one row of a scenario's DCF build-up.
type CashFlowYear struct {
	Year           int             `json:"year"`
	Revenue        decimal.Decimal `json:"revenue"`
	COGS           decimal.Decimal `json:"cogs"`
	GrossMargin    decimal.Decimal `json:"grossMargin"`
	EBITMargin     decimal.Decimal `json:"ebitMargin"`
	EBIT           decimal.Decimal `json:"ebit"`
	NOPAT          decimal.Decimal `json:"nopat"`
	Depreciation   decimal.Decimal `json:"depreciation"`
	CapEx          decimal.Decimal `json:"capex"`
	NWCChange      decimal.Decimal `json:"nwcChange"`
	FreeCashFlow   decimal.Decimal `json:"fcf"`
	DiscountFactor decimal.Decimal `json:"discountFactor"`
	DiscountedFCF  decimal.Decimal `json:"discountedFcf"`
}

// ValuationResult is the terminal output of one DCF run.
type ValuationResult struct {
	PVOfFCF         decimal.Decimal `json:"pvOfFcf"`
	TerminalValue   decimal.Decimal `json:"terminalValue"`
	PVOfTerminal    decimal.Decimal `json:"pvOfTerminal"`
	EnterpriseValue decimal.Decimal `json:"enterpriseValue"`
	EquityValue     decimal.Decimal `json:"equityValue"`
	PricePerShare   decimal.Decimal `json:"pricePerShare"`
}

// ScenarioValuation couples a scenario's cash-flow rows with its valuation.
type ScenarioValuation struct {
	Name   string          `json:"name"`
	WACC   decimal.Decimal `json:"wacc"`
	Years  []CashFlowYear  `json:"years"`
	Result ValuationResult `json:"result"`
}

// MetricUplift is the ESG-minus-baseline change in one valuation metric.
// Percent is meaningless when the baseline is zero; PercentUndefined marks
// that case explicitly so presentation never renders NaN or infinity.
type MetricUplift struct {
	Absolute         decimal.Decimal `json:"absolute"`
	Percent          decimal.Decimal `json:"percent"`
	PercentUndefined bool            `json:"percentUndefined"`
}

// ValuationComparison is the baseline-vs-ESG uplift across all three
// valuation metrics.
type ValuationComparison struct {
	EnterpriseValue MetricUplift `json:"enterpriseValue"`
	EquityValue     MetricUplift `json:"equityValue"`
	PricePerShare   MetricUplift `json:"pricePerShare"`
}

// WaterfallEntry allocates a slice of the enterprise-value uplift to one ESG
// factor. Entries for a run sum to the total uplift within floating-point
// tolerance.
type WaterfallEntry struct {
	Factor      Factor          `json:"factor"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`       // $M
	Share       decimal.Decimal `json:"share"`       // fraction of total uplift
	Improvement decimal.Decimal `json:"improvement"` // target - current
}

// Warning is a non-fatal sanity flag returned alongside results.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnMarginOutOfRange = "margin_out_of_range"
	WarnNegativeTerminal = "negative_terminal_fcf"
)

// ValuationReport is the full structured result of one model run, consumed
// by the presentation layer.
type ValuationReport struct {
	Company         string              `json:"company"`
	Horizon         int                 `json:"horizon"`
	WACC            decimal.Decimal     `json:"wacc"`
	TerminalGrowth  decimal.Decimal     `json:"terminalGrowth"`
	RevenueGrowth   decimal.Decimal     `json:"revenueGrowth"`
	YearProjections []YearProjection    `json:"yearProjections"`
	Baseline        ScenarioValuation   `json:"baseline"`
	ESG             ScenarioValuation   `json:"esg"`
	Comparison      ValuationComparison `json:"comparison"`
	Waterfall       []WaterfallEntry    `json:"waterfall"`
	Warnings        []Warning           `json:"warnings,omitempty"`
}
