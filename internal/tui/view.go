package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecovaluate/esgval/internal/domain"
	"github.com/ecovaluate/esgval/internal/output"
	"github.com/ecovaluate/esgval/internal/tui/components"
)

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	title := "ESG Valuation"
	if m.report.Company != "" {
		title += " - " + m.report.Company
	}
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d-year horizon, WACC %s, terminal growth %s",
		m.report.Horizon,
		output.FormatPercent(m.report.WACC),
		output.FormatPercent(m.report.TerminalGrowth))))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	switch m.current {
	case viewSummary:
		sb.WriteString(m.renderSummary())
	case viewMargins:
		sb.WriteString(m.renderMargins())
	case viewWaterfall:
		sb.WriteString(m.renderWaterfall())
	}

	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("tab: switch view • q: quit"))

	return AppStyle.Render(sb.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.current {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, TabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSummary() string {
	var sb strings.Builder

	rows := []struct {
		label  string
		base   string
		esg    string
		uplift domain.MetricUplift
	}{
		{"Enterprise Value", output.FormatCurrency(m.report.Baseline.Result.EnterpriseValue),
			output.FormatCurrency(m.report.ESG.Result.EnterpriseValue), m.report.Comparison.EnterpriseValue},
		{"Equity Value", output.FormatCurrency(m.report.Baseline.Result.EquityValue),
			output.FormatCurrency(m.report.ESG.Result.EquityValue), m.report.Comparison.EquityValue},
		{"Price per Share", "$" + m.report.Baseline.Result.PricePerShare.StringFixed(2),
			"$" + m.report.ESG.Result.PricePerShare.StringFixed(2), m.report.Comparison.PricePerShare},
	}

	for _, r := range rows {
		delta := r.uplift.Absolute
		deltaText := delta.StringFixed(2) + " (" + output.FormatUpliftPercent(r.uplift) + ")"
		deltaStyle := PositiveStyle
		if delta.IsNegative() {
			deltaStyle = NegativeStyle
		}
		sb.WriteString(MetricLabelStyle.Render(r.label))
		sb.WriteString(MetricValueStyle.Render(fmt.Sprintf("%-14s → %-14s ", r.base, r.esg)))
		sb.WriteString(deltaStyle.Render(deltaText))
		sb.WriteString("\n")
	}

	if len(m.report.Warnings) > 0 {
		sb.WriteString("\n")
		for _, w := range m.report.Warnings {
			sb.WriteString(NegativeStyle.Render("! "+w.Message) + "\n")
		}
	}

	return BorderStyle.Render(sb.String())
}

func (m Model) renderMargins() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-6s %12s %12s %12s %12s\n",
		"Year", "Gross base", "Gross ESG", "EBIT base", "EBIT ESG"))
	for _, y := range m.report.YearProjections {
		grossDelta := y.ESGGross.Sub(y.BaselineGross)
		style := PositiveStyle
		if grossDelta.IsNegative() {
			style = NegativeStyle
		}
		row := fmt.Sprintf("%-6d %12s %12s %12s %12s",
			y.Year,
			output.FormatPercent(y.BaselineGross),
			output.FormatPercent(y.ESGGross),
			output.FormatPercent(y.BaselineEBIT),
			output.FormatPercent(y.ESGEBIT))
		sb.WriteString(style.Render(row))
		sb.WriteString("\n")
	}

	chart := components.NewBarChart("ESG free cash flow by year ($M)")
	for _, y := range m.report.YearProjections {
		chart.Add(fmt.Sprintf("Year %d", y.Year), y.ESGFreeCash, ColorPrimary)
	}
	sb.WriteString("\n")
	sb.WriteString(chart.Render())

	return BorderStyle.Render(sb.String())
}

func (m Model) renderWaterfall() string {
	chart := components.NewBarChart("Enterprise value uplift by ESG factor ($M)")
	for _, e := range m.report.Waterfall {
		name := e.Name
		if name == "" {
			name = string(e.Factor)
		}
		color := ColorSuccess
		if e.Value.IsNegative() {
			color = ColorDanger
		}
		chart.Add(name, e.Value, color)
	}
	chart.Add("Total", m.report.Comparison.EnterpriseValue.Absolute, ColorPrimary)

	total := m.report.Comparison.EnterpriseValue
	footer := fmt.Sprintf("\nTotal uplift: %s (%s)",
		output.FormatCurrency(total.Absolute),
		output.FormatUpliftPercent(total))

	return BorderStyle.Render(chart.Render() + footer)
}
