package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/ecovaluate/esgval/internal/domain"
)

// CSVFormatter renders the per-year projection plus the valuation summary
// as CSV, one section after the other.
type CSVFormatter struct{}

// Format implements Formatter.
func (cf *CSVFormatter) Format(report *domain.ValuationReport) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Year",
		"Progress",
		"Baseline Gross Margin",
		"ESG Gross Margin",
		"Baseline EBIT Margin",
		"ESG EBIT Margin",
		"Baseline FCF",
		"ESG FCF",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, y := range report.YearProjections {
		row := []string{
			strconv.Itoa(y.Year),
			y.Progress.String(),
			y.BaselineGross.String(),
			y.ESGGross.String(),
			y.BaselineEBIT.String(),
			y.ESGEBIT.String(),
			y.BaselineFreeCash.String(),
			y.ESGFreeCash.String(),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	summaryHeader := []string{"Metric", "Baseline", "ESG", "Uplift", "Uplift Pct"}
	if err := writer.Write(summaryHeader); err != nil {
		return "", err
	}

	summaries := []struct {
		name   string
		base   string
		esg    string
		uplift domain.MetricUplift
	}{
		{"Enterprise Value", report.Baseline.Result.EnterpriseValue.String(),
			report.ESG.Result.EnterpriseValue.String(), report.Comparison.EnterpriseValue},
		{"Equity Value", report.Baseline.Result.EquityValue.String(),
			report.ESG.Result.EquityValue.String(), report.Comparison.EquityValue},
		{"Price Per Share", report.Baseline.Result.PricePerShare.String(),
			report.ESG.Result.PricePerShare.String(), report.Comparison.PricePerShare},
	}
	for _, s := range summaries {
		pct := ""
		if !s.uplift.PercentUndefined {
			pct = s.uplift.Percent.String()
		}
		row := []string{s.name, s.base, s.esg, s.uplift.Absolute.String(), pct}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	waterfallHeader := []string{"Factor", "Improvement", "Value", "Share"}
	if err := writer.Write(waterfallHeader); err != nil {
		return "", err
	}
	for _, e := range report.Waterfall {
		row := []string{string(e.Factor), e.Improvement.String(), e.Value.String(), e.Share.String()}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
