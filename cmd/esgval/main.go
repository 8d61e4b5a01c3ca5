package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecovaluate/esgval/internal/calculation"
	"github.com/ecovaluate/esgval/internal/config"
	"github.com/ecovaluate/esgval/internal/domain"
	"github.com/ecovaluate/esgval/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "esgval",
	Short: "ESG-integrated DCF valuation CLI",
	Long:  "Values a company under a financial baseline and an ESG-adjusted scenario, decomposing the uplift by ESG factor.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")
		if err := config.InitLogger(debugMode); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

var valueCmd = &cobra.Command{
	Use:   "value [config-file]",
	Short: "Run the baseline and ESG-adjusted valuation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewValuationEngine()
		report, err := engine.RunValuation(context.Background(), cfg)
		if err != nil {
			return eris.Wrap(err, "value")
		}

		zap.L().Debug("valuation complete",
			zap.String("company", report.Company),
			zap.String("baseline_ev", report.Baseline.Result.EnterpriseValue.String()),
			zap.String("esg_ev", report.ESG.Result.EnterpriseValue.String()))

		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			return eris.Errorf("value: unsupported format %q", format)
		}
		text, err := f.Format(report)
		if err != nil {
			return eris.Wrap(err, "value: format report")
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			return eris.Wrapf(err, "validate %s", args[0])
		}
		fmt.Printf("Configuration file %s is valid\n", args[0])
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "esgval %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadConfig reads the config file and applies command-line overrides for
// the assumptions analysts tweak most often.
func loadConfig(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load config %s", path)
	}

	if cmd.Flags().Changed("horizon") {
		horizon, _ := cmd.Flags().GetInt("horizon")
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("terminal-growth") {
		raw, _ := cmd.Flags().GetString("terminal-growth")
		g, perr := decimal.NewFromString(raw)
		if perr != nil {
			return nil, eris.Wrapf(perr, "parse --terminal-growth %q", raw)
		}
		cfg.TerminalGrowth = &g
	}
	if cmd.Flags().Changed("growth") {
		raw, _ := cmd.Flags().GetString("growth")
		g, perr := decimal.NewFromString(raw)
		if perr != nil {
			return nil, eris.Wrapf(perr, "parse --growth %q", raw)
		}
		cfg.RevenueGrowth = g
	}

	return cfg, nil
}

func main() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	valueCmd.Flags().String("format", "console", "Output format: console, json, csv")
	valueCmd.Flags().Int("horizon", 0, "Override the projection horizon in years")
	valueCmd.Flags().String("terminal-growth", "", "Override the terminal growth rate (fraction, e.g. 0.02)")
	valueCmd.Flags().String("growth", "", "Override the annual revenue growth rate (fraction)")

	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sensitivityCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
