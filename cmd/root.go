package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deal-analyzer/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "deal-analyzer",
	Short: "Commercial real estate deal analysis engine",
	Long: `deal-analyzer computes underwriting metrics (cap rate, cash-on-cash,
DSCR, LTV, GRM, IRR, ROI, breakeven occupancy and friends) from a property
facts file, runs asset-specific analysis packages, and rates the deal.

Facts files are JSON or YAML. Every field is optional: metrics whose inputs
are missing are reported as validation errors instead of failing the run.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return config.InitLogger(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
