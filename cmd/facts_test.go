//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/model"
)

func writeTempFacts(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFacts_JSON(t *testing.T) {
	path := writeTempFacts(t, "deal.json", `{
		"propertyName": "Oak Plaza",
		"propertyType": "office",
		"purchasePrice": 5000000,
		"currentNOI": 400000
	}`)

	facts, err := loadFacts(path)
	require.NoError(t, err)
	assert.Equal(t, "Oak Plaza", facts.PropertyName)
	assert.Equal(t, model.PropertyOffice, facts.PropertyType)
	assert.InDelta(t, 5_000_000.0, facts.PurchasePrice, 0.001)
	assert.InDelta(t, 400_000.0, facts.CurrentNOI, 0.001)
}

func TestLoadFacts_YAML(t *testing.T) {
	path := writeTempFacts(t, "deal.yaml", `
propertyName: Cedar Logistics Center
propertyType: industrial
purchasePrice: 12000000
squareFootage: 150000
clearHeightFt: 32
`)

	facts, err := loadFacts(path)
	require.NoError(t, err)
	assert.Equal(t, "Cedar Logistics Center", facts.PropertyName)
	assert.Equal(t, model.PropertyIndustrial, facts.PropertyType)
	assert.InDelta(t, 150_000.0, facts.SquareFootage, 0.001)
	assert.InDelta(t, 32.0, facts.ClearHeightFt, 0.001)
}

func TestLoadFacts_UnsupportedExtension(t *testing.T) {
	path := writeTempFacts(t, "deal.txt", "propertyName: Nope")

	_, err := loadFacts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestLoadFacts_BadJSON(t *testing.T) {
	path := writeTempFacts(t, "deal.json", "{not json")

	_, err := loadFacts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse facts file")
}

func TestLoadFacts_MissingFile(t *testing.T) {
	_, err := loadFacts(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read facts file")
}

func TestParseMetricSelection(t *testing.T) {
	sel := parseMetricSelection("capRate, dscr ,irr")
	assert.Equal(t, []string{"capRate", "dscr", "irr"}, sel.Requested())

	all := parseMetricSelection("")
	assert.Len(t, all.Requested(), len(model.CoreMetrics))

	blank := parseMetricSelection("  ,  ")
	assert.Empty(t, blank.Requested())
}
