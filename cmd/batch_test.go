//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/bundle"
	"github.com/sells-group/deal-analyzer/internal/engine"
	"github.com/sells-group/deal-analyzer/internal/model"
)

func writeBatchDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"alpha.json":  `{"propertyName":"Alpha Tower","purchasePrice":5000000,"currentNOI":400000}`,
		"beta.yaml":   "propertyName: Beta Flats\npurchasePrice: 10000000\ncurrentNOI: 650000\n",
		"broken.json": `{not json`,
		"notes.txt":   "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestFactsFilesIn(t *testing.T) {
	dir := writeBatchDir(t)

	files, err := factsFilesIn(dir)
	require.NoError(t, err)

	// Sorted, with the .txt file ignored.
	require.Len(t, files, 3)
	assert.Equal(t, "alpha.json", filepath.Base(files[0]))
	assert.Equal(t, "beta.yaml", filepath.Base(files[1]))
	assert.Equal(t, "broken.json", filepath.Base(files[2]))
}

func TestFactsFilesIn_MissingDir(t *testing.T) {
	_, err := factsFilesIn(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read directory")
}

func TestProcessBatch(t *testing.T) {
	dir := writeBatchDir(t)
	files, err := factsFilesIn(dir)
	require.NoError(t, err)

	an := engine.New(bundle.Defaults{})
	sel := model.MetricSelection{model.MetricCapRate: true}

	rows := processBatch(context.Background(), an, files, 2, sel, nil)
	require.Len(t, rows, 3)

	// Rows come back in input order regardless of completion order.
	assert.Equal(t, "Alpha Tower", rows[0].PropertyName)
	require.NotNil(t, rows[0].Result)
	assert.InDelta(t, 8.0, rows[0].Result.Values[model.MetricCapRate], 0.001)
	assert.Empty(t, rows[0].Err)

	assert.Equal(t, "Beta Flats", rows[1].PropertyName)
	require.NotNil(t, rows[1].Result)
	assert.InDelta(t, 6.5, rows[1].Result.Values[model.MetricCapRate], 0.001)

	assert.NotEmpty(t, rows[2].Err)
	assert.Nil(t, rows[2].Result)
}

func TestWriteBatchSummaryTable(t *testing.T) {
	rows := []batchRow{
		{
			File:         "/deals/alpha.json",
			PropertyName: "Alpha Tower",
			Result: &model.ComputedMetrics{
				Values: map[string]float64{model.MetricCapRate: 8.0, model.MetricDSCR: 1.45},
			},
			Rating: "Good",
		},
		{File: "/deals/broken.json", Err: "parse facts file"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatchTable(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "alpha.json")
	assert.Contains(t, out, "Alpha Tower")
	assert.Contains(t, out, "8.00")
	assert.Contains(t, out, "1.45")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "broken.json")
	assert.Contains(t, out, "parse facts file")
}

func TestWriteBatchCSV(t *testing.T) {
	rows := []batchRow{
		{
			File:         "alpha.json",
			PropertyName: "Alpha Tower",
			Result: &model.ComputedMetrics{
				Values: map[string]float64{model.MetricCapRate: 8.0},
			},
			Rating: "Excellent",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatchCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "file", records[0][0])
	assert.Equal(t, "alpha.json", records[1][0])
	assert.Equal(t, "8.00", records[1][2])
	// DSCR was not computed for this deal.
	assert.Equal(t, "-", records[1][4])
	assert.Equal(t, "Excellent", records[1][6])
}
