// Package compare computes baseline-versus-ESG uplift from two valuation
// results produced by the same DCF methodology.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

// Comparator derives uplift metrics between a baseline and an ESG-adjusted
// valuation. It is stateless; one instance can serve any number of runs.
type Comparator struct{}

// NewComparator creates a comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare returns the ESG-minus-baseline uplift for enterprise value, equity
// value and price per share. Percentages are fractions of the baseline; a
// zero baseline marks the percentage undefined instead of producing NaN or
// infinity.
func (c *Comparator) Compare(baseline, esg domain.ValuationResult) domain.ValuationComparison {
	return domain.ValuationComparison{
		EnterpriseValue: c.uplift(baseline.EnterpriseValue, esg.EnterpriseValue),
		EquityValue:     c.uplift(baseline.EquityValue, esg.EquityValue),
		PricePerShare:   c.uplift(baseline.PricePerShare, esg.PricePerShare),
	}
}

func (c *Comparator) uplift(base, adjusted decimal.Decimal) domain.MetricUplift {
	absolute := adjusted.Sub(base)
	if base.IsZero() {
		return domain.MetricUplift{Absolute: absolute, PercentUndefined: true}
	}
	return domain.MetricUplift{
		Absolute: absolute,
		Percent:  absolute.Div(base),
	}
}
