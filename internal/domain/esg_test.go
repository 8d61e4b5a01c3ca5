package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestESGMetric_Delta(t *testing.T) {
	m := ESGMetric{Current: decimal.NewFromInt(10), Target: decimal.NewFromInt(6)}
	assert.True(t, m.Delta().Equal(decimal.NewFromInt(-4)))

	m = ESGMetric{Current: decimal.NewFromInt(20), Target: decimal.NewFromInt(25)}
	assert.True(t, m.Delta().Equal(decimal.NewFromInt(5)))
}

func TestDefaultCoefficients(t *testing.T) {
	table := DefaultCoefficients()
	require.Equal(t, 4, table.Len())
	assert.Equal(t, AllFactors, table.Factors())

	ghg, ok := table.Get(FactorGHG)
	require.True(t, ok)
	assert.True(t, ghg.Value.Equal(decimal.NewFromFloat(-6.15)))
	assert.Equal(t, MarginGross, ghg.Target)

	water, ok := table.Get(FactorWater)
	require.True(t, ok)
	assert.True(t, water.Value.Equal(decimal.NewFromFloat(-3.09)))
	assert.Equal(t, MarginGross, water.Target)

	diversity, ok := table.Get(FactorDiversity)
	require.True(t, ok)
	assert.True(t, diversity.Value.Equal(decimal.NewFromFloat(1.43)))
	assert.Equal(t, MarginEBIT, diversity.Target)

	waste, ok := table.Get(FactorWaste)
	require.True(t, ok)
	assert.True(t, waste.Value.Equal(decimal.NewFromFloat(-0.11)))
	assert.Equal(t, MarginEBIT, waste.Target)
}

func TestNewCoefficientTable_RejectsDuplicates(t *testing.T) {
	_, err := NewCoefficientTable([]Coefficient{
		{Factor: FactorGHG, Target: MarginGross, Value: decimal.NewFromInt(-1)},
		{Factor: FactorGHG, Target: MarginGross, Value: decimal.NewFromInt(-2)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCoefficientTable_ZeroValue(t *testing.T) {
	var table CoefficientTable
	_, ok := table.Get(FactorGHG)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Factors())
}

func TestZeroCoefficients(t *testing.T) {
	table := ZeroCoefficients()
	require.Equal(t, 4, table.Len())
	for _, f := range table.Factors() {
		c, ok := table.Get(f)
		require.True(t, ok)
		assert.True(t, c.Value.IsZero(), "factor %s", f)
	}
}
