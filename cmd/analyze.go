package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/model"
	"github.com/sells-group/deal-analyzer/internal/rentroll"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <facts-file>",
	Short: "Compute underwriting metrics for a property",
	Long: `Compute the requested metrics from a JSON or YAML facts file and
optionally run asset-specific analysis packages on top.

Examples:
  # All core metrics, table output
  deal-analyzer analyze deal.json

  # A subset of metrics plus two analysis packages
  deal-analyzer analyze deal.yaml --metrics capRate,dscr,irr \
    --package debt-profile --package office-walt

  # Attach a tenant rent roll spreadsheet to the facts
  deal-analyzer analyze deal.json --rent-roll rentroll.xlsx \
    --package retail-cotenancy --package office-walt

  # Rate the deal and persist the run
  deal-analyzer analyze deal.json --assess --save

  # Spreadsheet export
  deal-analyzer analyze deal.json --format xlsx --output deal.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("metrics", "", "comma-separated metric names (default: all core metrics)")
	f.StringArray("package", nil, "analysis package ID to run (repeatable; see 'packages')")
	f.String("rent-roll", "", "XLSX or CSV tenant rent roll merged into the facts")
	f.String("unit-mix", "", "XLSX or CSV unit mix merged into the facts")
	f.String("format", "", "output format: table, json, csv, or xlsx (default from config)")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("assess", false, "rate the deal from the computed metrics")
	f.Bool("save", false, "persist the run to the history database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.Validate("analyze"); err != nil {
		return err
	}

	facts, err := loadFacts(args[0])
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("rent-roll"); path != "" {
		records, err := rentroll.Read(path, rentroll.Options{})
		if err != nil {
			return err
		}
		facts.Tenants = records
	}
	if path, _ := cmd.Flags().GetString("unit-mix"); path != "" {
		records, err := rentroll.Read(path, rentroll.Options{})
		if err != nil {
			return err
		}
		facts.Units = records
	}

	metricsFlag, _ := cmd.Flags().GetString("metrics")
	packageIDs, _ := cmd.Flags().GetStringArray("package")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	doAssess, _ := cmd.Flags().GetBool("assess")
	save, _ := cmd.Flags().GetBool("save")

	if format == "" {
		format = cfg.Analyze.Format
	}
	if !validFormat(format) {
		return eris.Errorf("analyze: --format must be table, json, csv, or xlsx (got %q)", format)
	}

	result := newAnalyzer().Analyze(facts, parseMetricSelection(metricsFlag), packageIDs...)

	var assessment *assess.DealAssessment
	if doAssess {
		a := assess.Assess(result)
		assessment = &a
	}

	report := analysisReport{
		Facts:      facts,
		Result:     result,
		Assessment: assessment,
	}
	if err := writeReport(report, format, outputPath); err != nil {
		return err
	}

	if save {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run := &model.AnalysisRun{
			ID:           result.RunID,
			PropertyName: facts.PropertyName,
			Facts:        facts,
			Result:       result,
		}
		if assessment != nil {
			run.Rating = string(assessment.Overall)
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return eris.Wrap(err, "analyze: save run")
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", run.ID)
		zap.L().Info("run saved",
			zap.String("runId", run.ID),
			zap.String("property", run.PropertyName),
		)
	}

	return nil
}
