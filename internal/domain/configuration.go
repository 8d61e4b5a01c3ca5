package domain

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// DefaultHorizon is the projection length in years when the config omits it.
const DefaultHorizon = 5

// Configuration is the YAML-loadable input for one model run.
type Configuration struct {
	Company string `yaml:"company" json:"company"`

	// Horizon is the explicit projection length in years. Zero means
	// DefaultHorizon; negative values are rejected.
	Horizon int `yaml:"horizon" json:"horizon"`

	// RevenueGrowth is the annual revenue growth fraction across the
	// horizon. Omitted means flat revenue.
	RevenueGrowth decimal.Decimal `yaml:"revenue_growth" json:"revenueGrowth"`

	// TerminalGrowth is the Gordon Growth perpetuity rate. When nil it
	// defaults to RevenueGrowth, which is what the original model assumed.
	TerminalGrowth *decimal.Decimal `yaml:"terminal_growth" json:"terminalGrowth,omitempty"`

	Financials FinancialInputs `yaml:"financials" json:"financials"`
	ESG        []ESGMetric     `yaml:"esg" json:"esg"`
}

// EffectiveHorizon resolves the horizon default.
func (c *Configuration) EffectiveHorizon() int {
	if c.Horizon == 0 {
		return DefaultHorizon
	}
	return c.Horizon
}

// EffectiveTerminalGrowth resolves the terminal growth default.
func (c *Configuration) EffectiveTerminalGrowth() decimal.Decimal {
	if c.TerminalGrowth != nil {
		return *c.TerminalGrowth
	}
	return c.RevenueGrowth
}

// Metric returns the ESG metric for a factor.
func (c *Configuration) Metric(factor Factor) (ESGMetric, bool) {
	for _, m := range c.ESG {
		if m.Factor == factor {
			return m, true
		}
	}
	return ESGMetric{}, false
}

// Validate checks the configuration against the engine's invariants. The
// WACC-versus-terminal-growth check lives in the DCF engine, where WACC is
// actually formed.
func (c *Configuration) Validate() error {
	if c.Horizon < 0 {
		return eris.Wrapf(ErrConfiguration, "horizon must be at least 1 (got %d)", c.Horizon)
	}
	if err := c.Financials.Validate(); err != nil {
		return err
	}

	seen := make(map[Factor]bool, len(c.ESG))
	for _, m := range c.ESG {
		known := false
		for _, f := range AllFactors {
			if m.Factor == f {
				known = true
				break
			}
		}
		if !known {
			return eris.Wrapf(ErrConfiguration, "unknown ESG factor %q", m.Factor)
		}
		if seen[m.Factor] {
			return eris.Wrapf(ErrConfiguration, "duplicate ESG factor %q", m.Factor)
		}
		seen[m.Factor] = true
	}
	for _, f := range AllFactors {
		if !seen[f] {
			return eris.Wrapf(ErrConfiguration, "missing ESG factor %q", f)
		}
	}

	return nil
}
