//go:build !integration

package main

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/model"
)

func sampleReport() analysisReport {
	return analysisReport{
		Facts: &model.PropertyFacts{PropertyName: "Oak Plaza"},
		Result: &model.ComputedMetrics{
			RunID:      "run-1",
			ComputedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			Values: map[string]float64{
				model.MetricCapRate:    8.0,
				model.MetricDSCR:       1.45,
				model.MetricPricePerSF: 1250.5,
			},
			ValidationErrors: map[string]string{
				model.MetricIRR: "cannot compute irr: missing projectedNOI",
			},
			Assumptions: map[string]float64{"exitCapRatePct": 8.0},
		},
	}
}

func TestFormatMetricValue(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		value  float64
		want   string
	}{
		{"percent", model.MetricCapRate, 8.25, "8.25%"},
		{"ratio", model.MetricDSCR, 1.45, "1.45x"},
		{"dollars with grouping", model.MetricPricePerUnit, 125000, "$125,000.00"},
		{"unknown metric", "leverageAlpha", 3.5, "3.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMetricValue(tt.metric, tt.value))
		})
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportTable(&buf, sampleReport())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Property: Oak Plaza")
	assert.Contains(t, out, "Cap Rate")
	assert.Contains(t, out, "8.00%")
	assert.Contains(t, out, "1.45x")
	assert.Contains(t, out, "$1,250.50")
	assert.Contains(t, out, "Skipped:")
	assert.Contains(t, out, "missing projectedNOI")
	assert.Contains(t, out, "Assumed inputs:")
	assert.Contains(t, out, "exitCapRatePct")
}

func TestWriteReportTable_WithAssessment(t *testing.T) {
	report := sampleReport()
	report.Assessment = &assess.DealAssessment{
		Overall:        assess.RatingGood,
		Recommendation: "Solid deal with good fundamentals. Worth pursuing.",
		ActiveMetrics:  2,
	}

	var buf bytes.Buffer
	err := writeReportTable(&buf, report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Overall rating: Good")
	assert.Contains(t, out, "Worth pursuing")
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportCSV(&buf, sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 4)
	assert.Equal(t, []string{"metric", "value"}, records[0])
	// Metric rows come in canonical order: capRate, dscr, pricePerSF.
	assert.Equal(t, []string{"capRate", "8.00"}, records[1])
	assert.Equal(t, []string{"dscr", "1.45"}, records[2])
	assert.Equal(t, []string{"pricePerSF", "1250.50"}, records[3])
	assert.Equal(t, "irr", records[4][0])
	assert.Contains(t, records[4][1], "ERROR:")
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportJSON(&buf, sampleReport())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"runId": "run-1"`)
	assert.Contains(t, buf.String(), `"capRate": 8`)
}

func TestWriteReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportXLSX(&buf, sampleReport())
	require.NoError(t, err)

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet, ok := f.Sheet["Metrics"]
	require.True(t, ok)
	// Header plus three metric rows.
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "Metric", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Cap Rate", sheet.Rows[1].Cells[0].Value)

	v, err := sheet.Rows[1].Cells[1].Float()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, v, 0.001)

	_, ok = f.Sheet["Skipped"]
	assert.True(t, ok)
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"table", "json", "csv", "xlsx"} {
		assert.True(t, validFormat(f), f)
	}
	assert.False(t, validFormat("yaml"))
	assert.False(t, validFormat(""))
}
