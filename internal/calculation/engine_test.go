package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovaluate/esgval/internal/domain"
)

func testConfiguration() *domain.Configuration {
	growth := decimal.NewFromFloat(0.02)
	return &domain.Configuration{
		Company:        "EcoMotors Inc.",
		Horizon:        5,
		RevenueGrowth:  decimal.NewFromFloat(0.05),
		TerminalGrowth: &growth,
		Financials:     *testFinancials(),
		ESG: []domain.ESGMetric{
			{Factor: domain.FactorGHG, Name: "GHG emissions", Unit: "MtCO2e", Current: decimal.NewFromFloat(3.5), Target: decimal.NewFromFloat(2.5)},
			{Factor: domain.FactorWater, Name: "Water withdrawal", Unit: "m3/unit", Current: decimal.NewFromFloat(3.5), Target: decimal.NewFromFloat(2.5)},
			{Factor: domain.FactorDiversity, Name: "Female employees", Unit: "%", Current: decimal.NewFromInt(20), Target: decimal.NewFromInt(25)},
			{Factor: domain.FactorWaste, Name: "Sustainable waste", Unit: "%", Current: decimal.NewFromInt(90), Target: decimal.NewFromInt(95)},
		},
	}
}

func TestValuationEngine_FullRun(t *testing.T) {
	engine := NewValuationEngine()
	report, err := engine.RunValuation(context.Background(), testConfiguration())
	require.NoError(t, err)

	assert.Equal(t, "EcoMotors Inc.", report.Company)
	assert.Equal(t, 5, report.Horizon)
	require.Len(t, report.YearProjections, 5)
	require.Len(t, report.Waterfall, 4)

	// GHG and water are cuts, diversity and waste are gains; under the signed
	// coefficient table all four improve the margin, so the ESG scenario must
	// be worth strictly more.
	assert.True(t, report.ESG.Result.EnterpriseValue.GreaterThan(report.Baseline.Result.EnterpriseValue))
	assert.True(t, report.Comparison.EnterpriseValue.Absolute.GreaterThan(decimal.Zero))
	assert.False(t, report.Comparison.EnterpriseValue.PercentUndefined)
	assert.True(t, report.Comparison.PricePerShare.Absolute.GreaterThan(decimal.Zero))
}

func TestValuationEngine_WaterfallSumsToUplift(t *testing.T) {
	engine := NewValuationEngine()
	report, err := engine.RunValuation(context.Background(), testConfiguration())
	require.NoError(t, err)

	sum := decimal.Zero
	shareSum := decimal.Zero
	for _, entry := range report.Waterfall {
		sum = sum.Add(entry.Value)
		shareSum = shareSum.Add(entry.Share)
	}

	uplift := report.Comparison.EnterpriseValue.Absolute
	relErr := sum.Sub(uplift).Abs().Div(uplift.Abs())
	assert.True(t, relErr.LessThan(decimal.New(1, -6)),
		"waterfall sum %s should reconstruct uplift %s (rel err %s)", sum, uplift, relErr)
	assertDecimalInDelta(t, decimalOne, shareSum, 1e-9)
}

func TestValuationEngine_Deterministic(t *testing.T) {
	engine := NewValuationEngine()
	cfg := testConfiguration()

	first, err := engine.RunValuation(context.Background(), cfg)
	require.NoError(t, err)
	second, err := engine.RunValuation(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, first.Baseline.Result.EnterpriseValue.Equal(second.Baseline.Result.EnterpriseValue))
	assert.True(t, first.ESG.Result.PricePerShare.Equal(second.ESG.Result.PricePerShare))
	require.Equal(t, len(first.Waterfall), len(second.Waterfall))
	for i := range first.Waterfall {
		assert.True(t, first.Waterfall[i].Value.Equal(second.Waterfall[i].Value))
	}
}

func TestValuationEngine_NoImprovementNoUplift(t *testing.T) {
	engine := NewValuationEngine()
	cfg := testConfiguration()
	for i := range cfg.ESG {
		cfg.ESG[i].Target = cfg.ESG[i].Current
	}

	report, err := engine.RunValuation(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, report.Baseline.Result.EnterpriseValue.Equal(report.ESG.Result.EnterpriseValue))
	assert.True(t, report.Comparison.EnterpriseValue.Absolute.IsZero())
	for _, entry := range report.Waterfall {
		assert.True(t, entry.Value.IsZero(), "factor %s should get no attribution", entry.Factor)
		assert.True(t, entry.Share.IsZero())
	}
}

func TestValuationEngine_ZeroCoefficientsNoUplift(t *testing.T) {
	engine := NewValuationEngineWithCoefficients(domain.ZeroCoefficients())
	report, err := engine.RunValuation(context.Background(), testConfiguration())
	require.NoError(t, err)

	assert.True(t, report.Comparison.EnterpriseValue.Absolute.IsZero())
	assert.True(t, report.Comparison.PricePerShare.Absolute.IsZero())
	for i, y := range report.YearProjections {
		assert.True(t, y.BaselineGross.Equal(y.ESGGross), "year %d", i+1)
		assert.True(t, y.BaselineFreeCash.Equal(y.ESGFreeCash), "year %d", i+1)
	}
}

func TestValuationEngine_RejectsInvalidConfiguration(t *testing.T) {
	engine := NewValuationEngine()

	cases := []struct {
		name   string
		mutate func(*domain.Configuration)
	}{
		{"negative horizon", func(c *domain.Configuration) { c.Horizon = -1 }},
		{"zero shares", func(c *domain.Configuration) { c.Financials.SharesOutstanding = decimal.Zero }},
		{"missing factor", func(c *domain.Configuration) { c.ESG = c.ESG[:3] }},
		{"duplicate factor", func(c *domain.Configuration) { c.ESG = append(c.ESG, c.ESG[0]) }},
		{"unknown factor", func(c *domain.Configuration) { c.ESG[0].Factor = "biodiversity" }},
		{"weights off", func(c *domain.Configuration) { c.Financials.DebtWeight = decimal.NewFromFloat(0.5) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfiguration()
			tc.mutate(cfg)
			_, err := engine.RunValuation(context.Background(), cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestValuationEngine_DefaultHorizonAndTerminalGrowth(t *testing.T) {
	engine := NewValuationEngine()
	cfg := testConfiguration()
	cfg.Horizon = 0
	cfg.TerminalGrowth = nil

	report, err := engine.RunValuation(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultHorizon, report.Horizon)
	assert.True(t, report.TerminalGrowth.Equal(cfg.RevenueGrowth))
}
