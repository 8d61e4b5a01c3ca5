// Package tui is an interactive terminal viewer for valuation reports.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecovaluate/esgval/internal/domain"
)

// view identifies one of the result tabs.
type view int

const (
	viewSummary view = iota
	viewMargins
	viewWaterfall
	viewCount
)

var viewNames = []string{"Summary", "Margins", "Waterfall"}

// keyMap defines the viewer's key bindings.
type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab/→", "next view"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab/←", "previous view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the viewer's application state.
type Model struct {
	report *domain.ValuationReport

	current view
	width   int
	height  int
}

// NewModel creates a viewer over a computed report.
func NewModel(report *domain.ValuationReport) Model {
	return Model{
		report: report,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.current = (m.current + 1) % viewCount
		case key.Matches(msg, keys.Prev):
			m.current = (m.current + viewCount - 1) % viewCount
		}
	}

	return m, nil
}
