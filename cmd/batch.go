package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/engine"
	"github.com/sells-group/deal-analyzer/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every facts file in a directory",
	Long: `Analyze all JSON and YAML facts files in a directory concurrently
and print a one-line-per-deal summary. Files that fail to parse are
reported in the summary rather than aborting the batch.

Examples:
  deal-analyzer batch ./deals
  deal-analyzer batch ./deals --concurrency 10 --format csv --output deals.csv
  deal-analyzer batch ./deals --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("metrics", "", "comma-separated metric names (default: all core metrics)")
	f.StringArray("package", nil, "analysis package ID to run on every deal (repeatable)")
	f.Int("concurrency", 0, "max files processed in parallel (default from config)")
	f.String("format", "", "summary format: table, csv, or xlsx (default from config)")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "persist each run to the history database")

	rootCmd.AddCommand(batchCmd)
}

// batchRow is one deal's summary line.
type batchRow struct {
	File         string
	PropertyName string
	Facts        *model.PropertyFacts
	Result       *model.ComputedMetrics
	Rating       assess.Rating
	Err          string
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("batch"); err != nil {
		return err
	}

	metricsFlag, _ := cmd.Flags().GetString("metrics")
	packageIDs, _ := cmd.Flags().GetStringArray("package")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrentFiles
	}
	if format == "" {
		format = cfg.Analyze.Format
	}
	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("batch: --format must be table, csv, or xlsx (got %q)", format)
	}

	files, err := factsFilesIn(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No facts files found.")
		return nil
	}

	selection := parseMetricSelection(metricsFlag)
	rows := processBatch(ctx, newAnalyzer(), files, concurrency, selection, packageIDs)

	if err := writeBatchSummary(rows, format, outputPath); err != nil {
		return err
	}

	if save {
		if err := saveBatchRuns(ctx, rows); err != nil {
			return err
		}
	}

	return nil
}

// factsFilesIn lists the facts files in dir, sorted by name.
func factsFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// processBatch analyzes files concurrently. One row comes back per file, in
// input order; parse failures land in the row's Err.
func processBatch(ctx context.Context, an *engine.Analyzer, files []string, concurrency int, selection model.MetricSelection, packageIDs []string) []batchRow {
	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	rows := make([]batchRow, len(files))
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, file := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				rows[i] = batchRow{File: file, Err: gctx.Err().Error()}
				return nil
			}

			row := batchRow{File: file}
			facts, err := loadFacts(file)
			if err != nil {
				failed.Add(1)
				row.Err = err.Error()
				zap.L().Error("facts file failed", zap.String("file", file), zap.Error(err))
				rows[i] = row
				return nil // don't abort batch on individual failure
			}

			result := an.Analyze(facts, selection, packageIDs...)
			row.PropertyName = facts.PropertyName
			row.Facts = facts
			row.Result = result
			row.Rating = assess.Assess(result).Overall
			succeeded.Add(1)
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return rows
}

// summaryMetrics are the metric columns shown on batch summary lines.
var summaryMetrics = []string{
	model.MetricCapRate,
	model.MetricCashOnCash,
	model.MetricDSCR,
	model.MetricIRR,
}

func writeBatchSummary(rows []batchRow, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return writeBatchCSV(w, rows)
	case "xlsx":
		return writeBatchXLSX(w, rows)
	default:
		return writeBatchTable(w, rows)
	}
}

func summaryValue(r *model.ComputedMetrics, metric string) string {
	if r == nil {
		return ""
	}
	v, ok := r.Values[metric]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func writeBatchTable(w io.Writer, rows []batchRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tPROPERTY\tCAP RATE\tCOC\tDSCR\tIRR\tRATING\tERROR")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			filepath.Base(row.File),
			row.PropertyName,
			summaryValue(row.Result, model.MetricCapRate),
			summaryValue(row.Result, model.MetricCashOnCash),
			summaryValue(row.Result, model.MetricDSCR),
			summaryValue(row.Result, model.MetricIRR),
			row.Rating,
			row.Err,
		)
	}
	return tw.Flush()
}

func writeBatchCSV(w io.Writer, rows []batchRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"file", "property"}, summaryMetrics...)
	header = append(header, "rating", "error")
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}

	for _, row := range rows {
		rec := []string{filepath.Base(row.File), row.PropertyName}
		for _, m := range summaryMetrics {
			rec = append(rec, summaryValue(row.Result, m))
		}
		rec = append(rec, string(row.Rating), row.Err)
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}
	return nil
}

func writeBatchXLSX(w io.Writer, rows []batchRow) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Deals")
	if err != nil {
		return eris.Wrap(err, "batch: xlsx add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"File", "Property", "Cap Rate", "Cash-on-Cash", "DSCR", "IRR", "Rating", "Error"} {
		header.AddCell().Value = h
	}
	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().Value = filepath.Base(row.File)
		r.AddCell().Value = row.PropertyName
		for _, m := range summaryMetrics {
			cell := r.AddCell()
			if row.Result != nil {
				if v, ok := row.Result.Values[m]; ok {
					cell.SetFloat(v)
				}
			}
		}
		r.AddCell().Value = string(row.Rating)
		r.AddCell().Value = row.Err
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "batch: xlsx write workbook")
	}
	return nil
}

func saveBatchRuns(ctx context.Context, rows []batchRow) error {
	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	var saved int
	for _, row := range rows {
		if row.Result == nil {
			continue
		}
		run := &model.AnalysisRun{
			ID:           row.Result.RunID,
			PropertyName: row.PropertyName,
			Rating:       string(row.Rating),
			Facts:        row.Facts,
			Result:       row.Result,
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return eris.Wrapf(err, "batch: save run for %s", row.File)
		}
		saved++
	}
	fmt.Fprintf(os.Stderr, "Saved %d runs\n", saved)
	return nil
}
