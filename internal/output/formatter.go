// Package output renders valuation reports for the terminal and for
// machine consumption. Percentages are fractions internally and become
// percent strings only here.
package output

import (
	"github.com/shopspring/decimal"

	"github.com/ecovaluate/esgval/internal/domain"
)

// Formatter renders a valuation report in one output format.
type Formatter interface {
	Format(report *domain.ValuationReport) (string, error)
}

// GetFormatterByName returns the formatter for a format name, or nil when
// the name is not recognized.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "table":
		return &ConsoleFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency renders a $M amount with thousands precision kept modest.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2) + "M"
}

// FormatPercent renders a fraction as a percent string.
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(decimalHundred).StringFixed(2) + "%"
}

// FormatUpliftPercent renders a MetricUplift's percentage, honoring the
// undefined marker instead of inventing a number.
func FormatUpliftPercent(u domain.MetricUplift) string {
	if u.PercentUndefined {
		return "n/a"
	}
	return FormatPercent(u.Percent)
}
