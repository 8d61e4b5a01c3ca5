package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovaluate/esgval/internal/calculation"
	"github.com/ecovaluate/esgval/internal/domain"
)

func reportFixture(t *testing.T) *domain.ValuationReport {
	t.Helper()
	growth := decimal.NewFromFloat(0.02)
	cfg := &domain.Configuration{
		Company:        "EcoMotors Inc.",
		Horizon:        3,
		RevenueGrowth:  decimal.NewFromFloat(0.05),
		TerminalGrowth: &growth,
		Financials: domain.FinancialInputs{
			Revenue:             decimal.NewFromInt(10000),
			COGSPercent:         decimal.NewFromFloat(0.50),
			SGAPercent:          decimal.NewFromFloat(0.20),
			RDPercent:           decimal.NewFromFloat(0.05),
			OtherOpexPct:        decimal.NewFromFloat(0.03),
			CapExPercent:        decimal.NewFromFloat(0.06),
			DepreciationPercent: decimal.NewFromFloat(0.05),
			NWCPercent:          decimal.NewFromFloat(0.10),
			TaxRate:             decimal.NewFromFloat(0.25),
			CostOfEquity:        decimal.NewFromFloat(0.09),
			CostOfDebt:          decimal.NewFromFloat(0.04),
			EquityWeight:        decimal.NewFromFloat(0.75),
			DebtWeight:          decimal.NewFromFloat(0.25),
			NetDebt:             decimal.NewFromInt(2000),
			SharesOutstanding:   decimal.NewFromInt(400),
		},
		ESG: []domain.ESGMetric{
			{Factor: domain.FactorGHG, Name: "GHG emissions", Unit: "MtCO2e", Current: decimal.NewFromFloat(3.5), Target: decimal.NewFromFloat(2.5)},
			{Factor: domain.FactorWater, Name: "Water withdrawal", Unit: "m3/unit", Current: decimal.NewFromFloat(3.5), Target: decimal.NewFromFloat(2.5)},
			{Factor: domain.FactorDiversity, Name: "Female employees", Unit: "%", Current: decimal.NewFromInt(20), Target: decimal.NewFromInt(25)},
			{Factor: domain.FactorWaste, Name: "Sustainable waste", Unit: "%", Current: decimal.NewFromInt(90), Target: decimal.NewFromInt(95)},
		},
	}
	report, err := calculation.NewValuationEngine().RunValuation(context.Background(), cfg)
	require.NoError(t, err)
	return report
}

func TestGetFormatterByName(t *testing.T) {
	assert.IsType(t, &ConsoleFormatter{}, GetFormatterByName("console"))
	assert.IsType(t, &ConsoleFormatter{}, GetFormatterByName("table"))
	assert.IsType(t, &JSONFormatter{}, GetFormatterByName("json"))
	assert.IsType(t, &CSVFormatter{}, GetFormatterByName("csv"))
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50M", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "24.60%", FormatPercent(decimal.NewFromFloat(0.246)))
	assert.Equal(t, "-5.00%", FormatPercent(decimal.NewFromFloat(-0.05)))

	assert.Equal(t, "12.50%", FormatUpliftPercent(domain.MetricUplift{Percent: decimal.NewFromFloat(0.125)}))
	assert.Equal(t, "n/a", FormatUpliftPercent(domain.MetricUplift{PercentUndefined: true}))
}

func TestConsoleFormatter(t *testing.T) {
	report := reportFixture(t)
	out, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)

	assert.Contains(t, out, "ESG-INTEGRATED DCF VALUATION - EcoMotors Inc.")
	assert.Contains(t, out, "MARGIN TRAJECTORY")
	assert.Contains(t, out, "BASELINE CASH FLOWS")
	assert.Contains(t, out, "ESG-ADJUSTED CASH FLOWS")
	assert.Contains(t, out, "VALUATION SUMMARY")
	assert.Contains(t, out, "ESG VALUE CREATION WATERFALL")
	assert.Contains(t, out, "GHG emissions")
	assert.NotContains(t, out, "WARNINGS", "a clean run prints no warning block")
}

func TestConsoleFormatter_Warnings(t *testing.T) {
	report := reportFixture(t)
	report.Warnings = append(report.Warnings, domain.Warning{
		Code:    domain.WarnMarginOutOfRange,
		Message: "year 3 ESG gross margin 1.2000 is outside [-1, 1]",
	})

	out, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "outside [-1, 1]")
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	report := reportFixture(t)
	out, err := (&JSONFormatter{Pretty: true}).Format(report)
	require.NoError(t, err)

	var decoded domain.ValuationReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, report.Company, decoded.Company)
	assert.Equal(t, report.Horizon, decoded.Horizon)
	assert.True(t, decoded.ESG.Result.EnterpriseValue.Equal(report.ESG.Result.EnterpriseValue))
	require.Len(t, decoded.Waterfall, len(report.Waterfall))
}

func TestCSVFormatter(t *testing.T) {
	report := reportFixture(t)
	out, err := (&CSVFormatter{}).Format(report)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1 // sections have different widths
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Year rows plus three section headers, three summary rows and four
	// waterfall rows.
	assert.Len(t, records, 1+report.Horizon+1+3+1+4)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "Metric", records[1+report.Horizon][0])
	assert.Equal(t, "Enterprise Value", records[2+report.Horizon][0])
}

func TestFormatSensitivityTable(t *testing.T) {
	growth := decimal.NewFromFloat(0.02)
	cfg := &domain.Configuration{
		Company:        "EcoMotors Inc.",
		Horizon:        3,
		TerminalGrowth: &growth,
		Financials: domain.FinancialInputs{
			Revenue:             decimal.NewFromInt(1000),
			COGSPercent:         decimal.NewFromFloat(0.50),
			SGAPercent:          decimal.NewFromFloat(0.20),
			RDPercent:           decimal.NewFromFloat(0.05),
			OtherOpexPct:        decimal.NewFromFloat(0.05),
			CapExPercent:        decimal.NewFromFloat(0.05),
			DepreciationPercent: decimal.NewFromFloat(0.05),
			NWCPercent:          decimal.NewFromFloat(0.10),
			TaxRate:             decimal.NewFromFloat(0.25),
			CostOfEquity:        decimal.NewFromFloat(0.10),
			EquityWeight:        decimal.NewFromInt(1),
			SharesOutstanding:   decimal.NewFromInt(100),
		},
		ESG: []domain.ESGMetric{
			{Factor: domain.FactorGHG, Current: decimal.NewFromInt(1), Target: decimal.NewFromInt(1)},
			{Factor: domain.FactorWater, Current: decimal.NewFromInt(1), Target: decimal.NewFromInt(1)},
			{Factor: domain.FactorDiversity, Current: decimal.NewFromInt(1), Target: decimal.NewFromInt(1)},
			{Factor: domain.FactorWaste, Current: decimal.NewFromInt(1), Target: decimal.NewFromInt(1)},
		},
	}
	result, err := calculation.NewValuationEngine().RunSensitivity(context.Background(), cfg, calculation.SensitivityRequest{
		WACCRange:   decimal.NewFromFloat(0.09),
		GrowthRange: decimal.NewFromFloat(0.01),
		Steps:       3,
	})
	require.NoError(t, err)

	out := FormatSensitivityTable(result)
	assert.Contains(t, out, "SENSITIVITY")
	assert.Contains(t, out, "WACC \\ g")
	// The 1% WACC row is at or below every growth column and prints dashes.
	assert.Contains(t, out, "-")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3+len(result.WACCs))
}
