package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecovaluate/esgval/internal/calculation"
	"github.com/ecovaluate/esgval/internal/config"
	"github.com/ecovaluate/esgval/internal/tui"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: esgval-tui <config-file>")
		os.Exit(1)
	}

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	engine := calculation.NewValuationEngine()
	report, err := engine.RunValuation(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(report), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
