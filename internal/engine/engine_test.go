package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/bundle"
	"github.com/sells-group/deal-analyzer/internal/model"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fullFacts() *model.PropertyFacts {
	return &model.PropertyFacts{
		PropertyType:       model.PropertyOffice,
		PurchasePrice:      5_000_000,
		SquareFootage:      50_000,
		NumberOfUnits:      40,
		CurrentNOI:         400_000,
		ProjectedNOI:       480_000,
		GrossIncome:        625_000,
		OperatingExpenses:  200_000,
		OccupancyRate:      92,
		AnnualCashFlow:     120_000,
		TotalCashInvested:  1_500_000,
		HoldingPeriodYears: 5,
		LoanAmount:         3_500_000,
		InterestRate:       5.5,
		LoanTermYears:      30,
	}
}

func TestAnalyzeAllMetrics(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	res := a.Analyze(fullFacts(), model.AllCoreMetrics())

	require.NotNil(t, res)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, fixedNow, res.ComputedAt)
	assert.Empty(t, res.ValidationErrors)
	assert.Len(t, res.Values, len(model.CoreMetrics))

	assert.InDelta(t, 8.0, res.Values[model.MetricCapRate], 0.01)
	assert.InDelta(t, 8.0, res.Values[model.MetricCashOnCash], 0.01)
	assert.InDelta(t, 1.68, res.Values[model.MetricDSCR], 0.01)
	assert.InDelta(t, 70.0, res.Values[model.MetricLTV], 0.01)
	assert.InDelta(t, 8.0, res.Values[model.MetricGRM], 0.01)
	assert.InDelta(t, 100.0, res.Values[model.MetricPricePerSF], 0.01)
	assert.InDelta(t, 125_000.0, res.Values[model.MetricPricePerUnit], 0.01)
	assert.InDelta(t, 575_000.0, res.Values[model.MetricEGI], 0.01)
	assert.InDelta(t, 70.19, res.Values[model.MetricBreakevenOccupancy], 0.05)
}

func TestAnalyzeCollectsValidationErrors(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	facts := &model.PropertyFacts{
		PurchasePrice: 5_000_000,
		CurrentNOI:    400_000,
	}
	res := a.Analyze(facts, model.AllCoreMetrics())

	// Cap rate computes; DSCR cannot, and its failure names every field.
	assert.InDelta(t, 8.0, res.Values[model.MetricCapRate], 0.01)
	assert.NotContains(t, res.Values, model.MetricDSCR)
	assert.Contains(t, res.ValidationErrors[model.MetricDSCR], "loanAmount")
	assert.Contains(t, res.ValidationErrors[model.MetricDSCR], "interestRate")
	assert.Contains(t, res.ValidationErrors[model.MetricDSCR], "loanTermYears")
}

func TestAnalyzeUnknownMetric(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	res := a.Analyze(fullFacts(), model.MetricSelection{"leverageAlpha": true})

	assert.Empty(t, res.Values)
	assert.Contains(t, res.ValidationErrors["leverageAlpha"], "unknown metric")
}

func TestAnalyzeSelectionSubset(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	res := a.Analyze(fullFacts(), model.MetricSelection{
		model.MetricCapRate: true,
		model.MetricDSCR:    true,
	})

	assert.Len(t, res.Values, 2)
	assert.NotContains(t, res.Values, model.MetricLTV)
}

func TestAnalyzeRunsPackages(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	res := a.Analyze(fullFacts(), model.MetricSelection{}, "debt-profile", "deal-snapshot", "not-a-package")

	require.Contains(t, res.AssetAnalysis, "debt-profile")
	require.Contains(t, res.AssetAnalysis, "deal-snapshot")
	assert.NotContains(t, res.AssetAnalysis, "not-a-package")
	assert.Len(t, res.AssetAnalysis, 2)
}

func TestAnalyzeSurfacesAssumptions(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	facts := fullFacts()
	facts.HoldingPeriodYears = 0 // ROI falls back to the documented default
	res := a.Analyze(facts, model.MetricSelection{model.MetricROI: true})

	assert.Contains(t, res.Values, model.MetricROI)
	assert.InDelta(t, 5.0, res.Assumptions["holdingPeriodYears"], 0.01)
	assert.InDelta(t, 8.0, res.Assumptions["exitCapRatePct"], 0.01)
}

func TestAnalyzeIdempotentWithFixedNow(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	facts := fullFacts()
	facts.Tenants = []map[string]any{
		{"name": "Main Tenant", "squareFootage": 30_000, "annualRent": 900_000, "leaseExpiry": "2030-06-30"},
	}

	first := a.Analyze(facts, model.AllCoreMetrics(), "walt-enhanced", "debt-profile")
	second := a.Analyze(facts, model.AllCoreMetrics(), "walt-enhanced", "debt-profile")

	// Everything except the run ID must match exactly.
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.ComputedAt, second.ComputedAt)
	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, first.ValidationErrors, second.ValidationErrors)
	assert.Equal(t, first.AssetAnalysis, second.AssetAnalysis)
	assert.Equal(t, first.Assumptions, second.Assumptions)
}

func TestAnalyzeDoesNotMutateFacts(t *testing.T) {
	a := New(bundle.Defaults{}).WithNow(fixedNow)
	facts := fullFacts()
	before := *facts
	a.Analyze(facts, model.AllCoreMetrics(), "deal-snapshot", "debt-profile")
	assert.Equal(t, before, *facts)
}
