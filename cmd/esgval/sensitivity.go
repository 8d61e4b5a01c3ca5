package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ecovaluate/esgval/internal/calculation"
	"github.com/ecovaluate/esgval/internal/output"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [config-file]",
		Short: "Sweep WACC and terminal growth around the configured values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}

			waccRange, err := decimalFlag(cmd, "wacc-range")
			if err != nil {
				return err
			}
			growthRange, err := decimalFlag(cmd, "growth-range")
			if err != nil {
				return err
			}
			steps, _ := cmd.Flags().GetInt("steps")

			engine := calculation.NewValuationEngine()
			result, err := engine.RunSensitivity(context.Background(), cfg, calculation.SensitivityRequest{
				WACCRange:   waccRange,
				GrowthRange: growthRange,
				Steps:       steps,
			})
			if err != nil {
				return eris.Wrap(err, "sensitivity")
			}

			fmt.Fprint(os.Stdout, output.FormatSensitivityTable(result))
			return nil
		},
	}

	cmd.Flags().String("wacc-range", "0.02", "Half-width of the WACC axis (fraction)")
	cmd.Flags().String("growth-range", "0.01", "Half-width of the terminal growth axis (fraction)")
	cmd.Flags().Int("steps", 5, "Grid points per axis")
	cmd.Flags().Int("horizon", 0, "Override the projection horizon in years")
	cmd.Flags().String("terminal-growth", "", "Override the terminal growth rate (fraction)")
	cmd.Flags().String("growth", "", "Override the annual revenue growth rate (fraction)")

	return cmd
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, eris.Wrapf(err, "parse --%s %q", name, raw)
	}
	return d, nil
}
