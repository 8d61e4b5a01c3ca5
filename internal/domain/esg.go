package domain

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// Factor identifies one of the four ESG levers the model prices.
type Factor string

const (
	FactorGHG       Factor = "ghg"
	FactorWater     Factor = "water"
	FactorDiversity Factor = "diversity"
	FactorWaste     Factor = "waste"
)

// AllFactors lists the factors in presentation order.
var AllFactors = []Factor{FactorGHG, FactorWater, FactorDiversity, FactorWaste}

// MarginTarget names the margin a coefficient applies to.
type MarginTarget string

const (
	MarginGross MarginTarget = "gross"
	MarginEBIT  MarginTarget = "ebit"
)

// ESGMetric is a current/target pair for one factor. Targets are year-horizon
// commitments; the margin projector phases the gap in progressively.
type ESGMetric struct {
	Factor  Factor          `yaml:"factor" json:"factor"`
	Name    string          `yaml:"name" json:"name"`
	Unit    string          `yaml:"unit" json:"unit"`
	Current decimal.Decimal `yaml:"current" json:"current"`
	Target  decimal.Decimal `yaml:"target" json:"target"`
}

// Delta returns target minus current. The coefficient table is signed to
// match this orientation: reduction factors (GHG, water) carry negative
// coefficients, so a reduction (negative delta) raises the margin.
func (m ESGMetric) Delta() decimal.Decimal {
	return m.Target.Sub(m.Current)
}

// Coefficient translates one unit of ESG improvement into percentage points
// of margin. Values are research-derived constants, not estimates.
type Coefficient struct {
	Factor Factor          `json:"factor"`
	Target MarginTarget    `json:"target"`
	Value  decimal.Decimal `json:"value"` // margin percentage points per unit delta
	Unit   string          `json:"unit"`
}

// CoefficientTable is an immutable factor -> coefficient mapping. Build one
// with NewCoefficientTable or DefaultCoefficients; zero-value tables reject
// every lookup.
type CoefficientTable struct {
	entries map[Factor]Coefficient
	order   []Factor
}

// NewCoefficientTable builds a table from explicit entries. Duplicate factors
// are a configuration error.
func NewCoefficientTable(entries []Coefficient) (CoefficientTable, error) {
	table := CoefficientTable{entries: make(map[Factor]Coefficient, len(entries))}
	for _, e := range entries {
		if _, dup := table.entries[e.Factor]; dup {
			return CoefficientTable{}, eris.Wrapf(ErrConfiguration, "duplicate coefficient for factor %s", e.Factor)
		}
		table.entries[e.Factor] = e
		table.order = append(table.order, e.Factor)
	}
	return table, nil
}

// Get returns the coefficient for a factor.
func (t CoefficientTable) Get(factor Factor) (Coefficient, bool) {
	c, ok := t.entries[factor]
	return c, ok
}

// Factors returns the table's factors in insertion order.
func (t CoefficientTable) Factors() []Factor {
	out := make([]Factor, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of entries.
func (t CoefficientTable) Len() int { return len(t.entries) }

// DefaultCoefficients returns the research-derived coefficient table:
// GHG and water act on gross margin, diversity and waste on EBIT margin.
func DefaultCoefficients() CoefficientTable {
	table, err := NewCoefficientTable([]Coefficient{
		{Factor: FactorGHG, Target: MarginGross, Value: decimal.NewFromFloat(-6.15), Unit: "%GPM per MtCO2e"},
		{Factor: FactorWater, Target: MarginGross, Value: decimal.NewFromFloat(-3.09), Unit: "%GPM per m3"},
		{Factor: FactorDiversity, Target: MarginEBIT, Value: decimal.NewFromFloat(1.43), Unit: "%EBIT per pp female employees"},
		{Factor: FactorWaste, Target: MarginEBIT, Value: decimal.NewFromFloat(-0.11), Unit: "%EBIT per pp sustainable waste ratio"},
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return table
}

// ZeroCoefficients returns a table with the default factors and all-zero
// values. Used in tests to assert the no-impact properties.
func ZeroCoefficients() CoefficientTable {
	base := DefaultCoefficients()
	entries := make([]Coefficient, 0, base.Len())
	for _, f := range base.Factors() {
		c, _ := base.Get(f)
		c.Value = decimal.Zero
		entries = append(entries, c)
	}
	table, _ := NewCoefficientTable(entries)
	return table
}
