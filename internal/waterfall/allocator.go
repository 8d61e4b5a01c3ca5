// Package waterfall decomposes the total enterprise-value uplift of a run
// into per-factor contributions, proportional to each factor's
// magnitude-weighted coefficient impact.
package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

// Contribution is one factor's claim on the uplift. Weight must be the
// absolute value of coefficient times improvement; the allocator only
// normalizes, it does not re-derive signs.
type Contribution struct {
	Factor      domain.Factor
	Name        string
	Improvement decimal.Decimal
	Weight      decimal.Decimal
}

// Allocate splits totalUplift across the contributions in proportion to
// their weights. The entries sum to totalUplift up to division precision.
// When every weight is zero (no ESG improvement anywhere) the breakdown is
// all zeros rather than a division by zero.
func Allocate(contributions []Contribution, totalUplift decimal.Decimal) []domain.WaterfallEntry {
	totalWeight := decimal.Zero
	for _, c := range contributions {
		totalWeight = totalWeight.Add(c.Weight)
	}

	entries := make([]domain.WaterfallEntry, 0, len(contributions))
	for _, c := range contributions {
		entry := domain.WaterfallEntry{
			Factor:      c.Factor,
			Name:        c.Name,
			Value:       decimal.Zero,
			Share:       decimal.Zero,
			Improvement: c.Improvement,
		}
		if totalWeight.IsPositive() {
			entry.Share = c.Weight.Div(totalWeight)
			entry.Value = totalUplift.Mul(entry.Share)
		}
		entries = append(entries, entry)
	}
	return entries
}
