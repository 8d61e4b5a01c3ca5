package output

import (
	"fmt"
	"strings"

	"github.com/ecovaluate/esgval/internal/calculation"
	"github.com/ecovaluate/esgval/internal/domain"
)

// ConsoleFormatter renders a report as fixed-width terminal tables.
type ConsoleFormatter struct{}

// Format implements Formatter.
func (cf *ConsoleFormatter) Format(report *domain.ValuationReport) (string, error) {
	var sb strings.Builder

	title := "ESG-INTEGRATED DCF VALUATION"
	if report.Company != "" {
		title += " - " + report.Company
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 86) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon: %d years   WACC: %s   Terminal growth: %s   Revenue growth: %s\n\n",
		report.Horizon,
		FormatPercent(report.WACC),
		FormatPercent(report.TerminalGrowth),
		FormatPercent(report.RevenueGrowth)))

	cf.writeMarginTable(&sb, report)
	cf.writeCashFlowTable(&sb, "BASELINE CASH FLOWS", report.Baseline)
	cf.writeCashFlowTable(&sb, "ESG-ADJUSTED CASH FLOWS", report.ESG)
	cf.writeValuationTable(&sb, report)
	cf.writeWaterfall(&sb, report)

	if len(report.Warnings) > 0 {
		sb.WriteString("WARNINGS\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", w.Code, w.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (cf *ConsoleFormatter) writeMarginTable(sb *strings.Builder, report *domain.ValuationReport) {
	sb.WriteString("MARGIN TRAJECTORY\n")
	sb.WriteString(strings.Repeat("-", 86) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %10s %14s %14s %14s %14s\n",
		"Year", "Progress", "Gross (base)", "Gross (ESG)", "EBIT (base)", "EBIT (ESG)"))
	for _, y := range report.YearProjections {
		sb.WriteString(fmt.Sprintf("%-6d %10s %14s %14s %14s %14s\n",
			y.Year,
			FormatPercent(y.Progress),
			FormatPercent(y.BaselineGross),
			FormatPercent(y.ESGGross),
			FormatPercent(y.BaselineEBIT),
			FormatPercent(y.ESGEBIT)))
	}
	sb.WriteString("\n")
}

func (cf *ConsoleFormatter) writeCashFlowTable(sb *strings.Builder, title string, sv domain.ScenarioValuation) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", 86) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %12s %12s %12s %12s %12s %12s\n",
		"Year", "Revenue", "EBIT", "NOPAT", "FCF", "Disc.F", "Disc.FCF"))
	for _, y := range sv.Years {
		sb.WriteString(fmt.Sprintf("%-6d %12s %12s %12s %12s %12s %12s\n",
			y.Year,
			y.Revenue.StringFixed(1),
			y.EBIT.StringFixed(1),
			y.NOPAT.StringFixed(1),
			y.FreeCashFlow.StringFixed(1),
			y.DiscountFactor.StringFixed(4),
			y.DiscountedFCF.StringFixed(1)))
	}
	sb.WriteString("\n")
}

func (cf *ConsoleFormatter) writeValuationTable(sb *strings.Builder, report *domain.ValuationReport) {
	sb.WriteString("VALUATION SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 86) + "\n")
	sb.WriteString(fmt.Sprintf("%-22s %16s %16s %14s %10s\n",
		"Metric", "Baseline", "ESG-Adjusted", "Uplift", "Uplift %"))

	rows := []struct {
		name    string
		base    string
		esg     string
		uplift  domain.MetricUplift
		percent string
	}{
		{"Enterprise Value ($M)", report.Baseline.Result.EnterpriseValue.StringFixed(1),
			report.ESG.Result.EnterpriseValue.StringFixed(1), report.Comparison.EnterpriseValue,
			FormatUpliftPercent(report.Comparison.EnterpriseValue)},
		{"Equity Value ($M)", report.Baseline.Result.EquityValue.StringFixed(1),
			report.ESG.Result.EquityValue.StringFixed(1), report.Comparison.EquityValue,
			FormatUpliftPercent(report.Comparison.EquityValue)},
		{"Price per Share ($)", report.Baseline.Result.PricePerShare.StringFixed(2),
			report.ESG.Result.PricePerShare.StringFixed(2), report.Comparison.PricePerShare,
			FormatUpliftPercent(report.Comparison.PricePerShare)},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-22s %16s %16s %14s %10s\n",
			r.name, r.base, r.esg, r.uplift.Absolute.StringFixed(2), r.percent))
	}

	sb.WriteString(fmt.Sprintf("\n%-22s %16s\n", "Terminal Value ($M)", report.ESG.Result.TerminalValue.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-22s %16s\n", "PV of Terminal ($M)", report.ESG.Result.PVOfTerminal.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-22s %16s\n\n", "PV of FCF ($M)", report.ESG.Result.PVOfFCF.StringFixed(1)))
}

func (cf *ConsoleFormatter) writeWaterfall(sb *strings.Builder, report *domain.ValuationReport) {
	sb.WriteString("ESG VALUE CREATION WATERFALL\n")
	sb.WriteString(strings.Repeat("-", 86) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %14s %14s %12s\n", "Factor", "Improvement", "Value ($M)", "Share"))
	for _, e := range report.Waterfall {
		name := e.Name
		if name == "" {
			name = string(e.Factor)
		}
		sb.WriteString(fmt.Sprintf("%-28s %14s %14s %12s\n",
			name,
			e.Improvement.StringFixed(2),
			e.Value.StringFixed(2),
			FormatPercent(e.Share)))
	}
	sb.WriteString(fmt.Sprintf("%-28s %14s %14s\n\n", "Total uplift", "",
		report.Comparison.EnterpriseValue.Absolute.StringFixed(2)))
}

// FormatSensitivityTable renders a sensitivity sweep as a WACC x growth
// grid of enterprise values. Invalid grid points (WACC at or below the
// growth rate) print as a dash.
func FormatSensitivityTable(result *calculation.SensitivityResult) string {
	var sb strings.Builder

	sb.WriteString("SENSITIVITY: ENTERPRISE VALUE ($M), ESG SCENARIO\n")
	sb.WriteString(strings.Repeat("-", 20+14*len(result.Growths)) + "\n")

	sb.WriteString(fmt.Sprintf("%-18s", "WACC \\ g"))
	for _, g := range result.Growths {
		sb.WriteString(fmt.Sprintf("%14s", FormatPercent(g)))
	}
	sb.WriteString("\n")

	for i, row := range result.Cells {
		sb.WriteString(fmt.Sprintf("%-18s", FormatPercent(result.WACCs[i])))
		for _, cell := range row {
			if cell.Valid {
				sb.WriteString(fmt.Sprintf("%14s", cell.EnterpriseValue.StringFixed(1)))
			} else {
				sb.WriteString(fmt.Sprintf("%14s", "-"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
