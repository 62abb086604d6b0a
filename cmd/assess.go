package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/model"
)

var assessCmd = &cobra.Command{
	Use:   "assess <facts-file>",
	Short: "Rate a deal from its computed metrics",
	Long: `Compute all core metrics from a facts file and roll the
participating ones (cap rate, cash-on-cash, DSCR, IRR, ROI, breakeven
occupancy) into an overall rating with a buy/pass recommendation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		facts, err := loadFacts(args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		if format == "" {
			format = cfg.Analyze.Format
		}
		if !validFormat(format) {
			return eris.Errorf("assess: --format must be table, json, csv, or xlsx (got %q)", format)
		}

		result := newAnalyzer().Analyze(facts, model.AllCoreMetrics())
		assessment := assess.Assess(result)

		return writeReport(analysisReport{
			Facts:      facts,
			Result:     result,
			Assessment: &assessment,
		}, format, outputPath)
	},
}

func init() {
	assessCmd.Flags().String("format", "", "output format: table, json, csv, or xlsx (default from config)")
	assessCmd.Flags().String("output", "", "output file path (default: stdout)")
	rootCmd.AddCommand(assessCmd)
}
