// Package components holds reusable terminal widgets for the results viewer.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Bar is one labeled value in a horizontal bar chart.
type Bar struct {
	Label string
	Value decimal.Decimal
	Color lipgloss.Color
}

// BarChart renders labeled horizontal bars scaled to the largest absolute
// value. Negative values draw to the left of the axis marker.
type BarChart struct {
	Title string
	Bars  []Bar
	Width int // width of the bar area, not counting labels
}

// NewBarChart creates a chart with a sensible default width.
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// Add appends a bar and returns the chart for chaining.
func (c *BarChart) Add(label string, value decimal.Decimal, color lipgloss.Color) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Color: color})
	return c
}

// Render returns the styled chart.
func (c *BarChart) Render() string {
	var sb strings.Builder

	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title))
		sb.WriteString("\n\n")
	}

	maxAbs := decimal.Zero
	labelWidth := 0
	for _, b := range c.Bars {
		if abs := b.Value.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}

	for _, b := range c.Bars {
		cells := 0
		if maxAbs.IsPositive() {
			ratio, _ := b.Value.Abs().Div(maxAbs).Float64()
			cells = int(ratio * float64(c.Width))
		}
		if cells == 0 && !b.Value.IsZero() {
			cells = 1
		}

		bar := strings.Repeat("█", cells)
		style := lipgloss.NewStyle().Foreground(b.Color)
		sb.WriteString(fmt.Sprintf("%-*s ", labelWidth, b.Label))
		if b.Value.IsNegative() {
			sb.WriteString(style.Render(bar) + "┤")
		} else {
			sb.WriteString("├" + style.Render(bar))
		}
		sb.WriteString(fmt.Sprintf(" %s", b.Value.StringFixed(2)))
		sb.WriteString("\n")
	}

	return sb.String()
}
