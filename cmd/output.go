package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/model"
)

// analysisReport bundles everything a single analyze run produced.
type analysisReport struct {
	Facts      *model.PropertyFacts   `json:"facts,omitempty"`
	Result     *model.ComputedMetrics `json:"result"`
	Assessment *assess.DealAssessment `json:"assessment,omitempty"`
}

// metricUnit controls how a metric value renders in human-readable output.
type metricUnit int

const (
	unitPercent metricUnit = iota
	unitRatio
	unitDollars
)

var metricDisplay = map[string]struct {
	Label string
	Unit  metricUnit
}{
	model.MetricCapRate:            {"Cap Rate", unitPercent},
	model.MetricCashOnCash:         {"Cash-on-Cash Return", unitPercent},
	model.MetricDSCR:               {"DSCR", unitRatio},
	model.MetricLTV:                {"Loan-to-Value", unitPercent},
	model.MetricGRM:                {"Gross Rent Multiplier", unitRatio},
	model.MetricPricePerSF:         {"Price per SF", unitDollars},
	model.MetricPricePerUnit:       {"Price per Unit", unitDollars},
	model.MetricEGI:                {"Effective Gross Income", unitDollars},
	model.MetricBreakevenOccupancy: {"Breakeven Occupancy", unitPercent},
	model.MetricIRR:                {"IRR", unitPercent},
	model.MetricROI:                {"ROI", unitPercent},
}

func validFormat(format string) bool {
	switch format {
	case "table", "json", "csv", "xlsx":
		return true
	}
	return false
}

// writeReport renders the report in the requested format to outputPath, or
// stdout when the path is empty.
func writeReport(report analysisReport, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "json":
		return writeReportJSON(w, report)
	case "csv":
		return writeReportCSV(w, report)
	case "xlsx":
		return writeReportXLSX(w, report)
	default:
		return writeReportTable(w, report)
	}
}

func writeReportJSON(w io.Writer, report analysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return eris.Wrap(err, "encode report JSON")
	}
	return nil
}

// orderedMetrics returns the computed metric names in canonical order.
func orderedMetrics(values map[string]float64) []string {
	var names []string
	for _, m := range model.CoreMetrics {
		if _, ok := values[m]; ok {
			names = append(names, m)
		}
	}
	return names
}

// formatMetricValue renders one metric value with its unit. Dollar figures
// get locale-aware thousands grouping.
func formatMetricValue(name string, v float64) string {
	d, ok := metricDisplay[name]
	if !ok {
		return fmt.Sprintf("%.2f", v)
	}
	switch d.Unit {
	case unitPercent:
		return fmt.Sprintf("%.2f%%", v)
	case unitDollars:
		p := message.NewPrinter(language.English)
		return p.Sprintf("$%.2f", v)
	default:
		return fmt.Sprintf("%.2fx", v)
	}
}

func metricLabel(name string) string {
	if d, ok := metricDisplay[name]; ok {
		return d.Label
	}
	return name
}

func writeReportTable(w io.Writer, report analysisReport) error {
	res := report.Result

	if report.Facts != nil && report.Facts.PropertyName != "" {
		fmt.Fprintf(w, "Property: %s\n\n", report.Facts.PropertyName)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	for _, name := range orderedMetrics(res.Values) {
		fmt.Fprintf(tw, "%s\t%s\n", metricLabel(name), formatMetricValue(name, res.Values[name]))
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "write metrics table")
	}

	if len(res.ValidationErrors) > 0 {
		fmt.Fprintln(w, "\nSkipped:")
		for _, name := range sortedKeys(res.ValidationErrors) {
			fmt.Fprintf(w, "  %s: %s\n", name, res.ValidationErrors[name])
		}
	}

	if len(res.AssetAnalysis) > 0 {
		fmt.Fprintln(w, "\nAnalysis packages:")
		for _, key := range sortedKeys(res.AssetAnalysis) {
			fmt.Fprintf(w, "  %s:\n", key)
			payload, _ := res.AssetAnalysis[key].(map[string]any)
			for _, k := range sortedKeys(payload) {
				fmt.Fprintf(w, "    %-28s %v\n", k, payload[k])
			}
		}
	}

	if len(res.Assumptions) > 0 {
		fmt.Fprintln(w, "\nAssumed inputs:")
		for _, k := range sortedKeys(res.Assumptions) {
			fmt.Fprintf(w, "  %-28s %.2f\n", k, res.Assumptions[k])
		}
	}

	if report.Assessment != nil {
		a := report.Assessment
		fmt.Fprintf(w, "\nOverall rating: %s (%d metrics rated)\n", a.Overall, a.ActiveMetrics)
		fmt.Fprintf(w, "%s\n", a.Recommendation)
	}

	return nil
}

func writeReportCSV(w io.Writer, report analysisReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return eris.Wrap(err, "write CSV header")
	}
	res := report.Result
	for _, name := range orderedMetrics(res.Values) {
		row := []string{name, fmt.Sprintf("%.2f", res.Values[name])}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write CSV row")
		}
	}
	for _, name := range sortedKeys(res.ValidationErrors) {
		if err := cw.Write([]string{name, "ERROR: " + res.ValidationErrors[name]}); err != nil {
			return eris.Wrap(err, "write CSV row")
		}
	}
	return nil
}

func writeReportXLSX(w io.Writer, report analysisReport) error {
	f := xlsx.NewFile()
	res := report.Result

	sheet, err := f.AddSheet("Metrics")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}
	header := sheet.AddRow()
	header.AddCell().Value = "Metric"
	header.AddCell().Value = "Value"
	for _, name := range orderedMetrics(res.Values) {
		row := sheet.AddRow()
		row.AddCell().Value = metricLabel(name)
		row.AddCell().SetFloat(res.Values[name])
	}

	if len(res.ValidationErrors) > 0 {
		errSheet, err := f.AddSheet("Skipped")
		if err != nil {
			return eris.Wrap(err, "xlsx: add sheet")
		}
		for _, name := range sortedKeys(res.ValidationErrors) {
			row := errSheet.AddRow()
			row.AddCell().Value = name
			row.AddCell().Value = res.ValidationErrors[name]
		}
	}

	if report.Assessment != nil {
		a := report.Assessment
		rateSheet, err := f.AddSheet("Assessment")
		if err != nil {
			return eris.Wrap(err, "xlsx: add sheet")
		}
		row := rateSheet.AddRow()
		row.AddCell().Value = "Overall"
		row.AddCell().Value = string(a.Overall)
		for _, name := range sortedKeys(a.MetricScores) {
			r := rateSheet.AddRow()
			r.AddCell().Value = name
			r.AddCell().Value = string(a.MetricScores[name])
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
