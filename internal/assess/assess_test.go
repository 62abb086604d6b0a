package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/deal-analyzer/internal/model"
)

func metricsWith(values map[string]float64) *model.ComputedMetrics {
	return &model.ComputedMetrics{Values: values}
}

func TestAssessExcellentDeal(t *testing.T) {
	a := Assess(metricsWith(map[string]float64{
		model.MetricCapRate:            8.5,
		model.MetricCashOnCash:         9.2,
		model.MetricDSCR:               1.4,
		model.MetricIRR:                14,
		model.MetricBreakevenOccupancy: 78,
	}))
	assert.Equal(t, RatingExcellent, a.Overall)
	assert.Equal(t, 5, a.ActiveMetrics)
	assert.Equal(t, RatingExcellent, a.MetricScores[model.MetricDSCR])
	assert.NotEmpty(t, a.Recommendation)
}

func TestAssessTieFavorsGood(t *testing.T) {
	// Two Good, two Fair, nothing Excellent: the tie-break lands on Good.
	a := Assess(metricsWith(map[string]float64{
		model.MetricCapRate:    6.5, // Good
		model.MetricCashOnCash: 7.0, // Good
		model.MetricIRR:        5.0, // Fair
		model.MetricROI:        4.0, // Fair
	}))
	assert.Equal(t, RatingGood, a.Overall)
	assert.Equal(t, 4, a.ActiveMetrics)
}

func TestAssessFair(t *testing.T) {
	a := Assess(metricsWith(map[string]float64{
		model.MetricCapRate:            4.0, // Fair
		model.MetricDSCR:               1.0, // Fair
		model.MetricBreakevenOccupancy: 95,  // Fair
		model.MetricIRR:                9.0, // Good
	}))
	assert.Equal(t, RatingFair, a.Overall)
}

func TestAssessPoorOnSplitCounts(t *testing.T) {
	// One Excellent, one Fair: Excellent does not strictly beat Fair, Good
	// does not tie, Fair does not strictly beat Excellent.
	a := Assess(metricsWith(map[string]float64{
		model.MetricCapRate: 9.0, // Excellent
		model.MetricIRR:     5.0, // Fair
	}))
	assert.Equal(t, RatingPoor, a.Overall)
}

func TestAssessInsufficient(t *testing.T) {
	a := Assess(metricsWith(nil))
	assert.Equal(t, RatingInsufficient, a.Overall)
	assert.Equal(t, 0, a.ActiveMetrics)
	assert.Equal(t, recommendations[RatingInsufficient], a.Recommendation)
}

func TestNonParticipatingMetricsIgnored(t *testing.T) {
	a := Assess(metricsWith(map[string]float64{
		model.MetricLTV:        65,
		model.MetricGRM:        8,
		model.MetricPricePerSF: 250,
	}))
	assert.Equal(t, RatingInsufficient, a.Overall)
}

func TestBreakevenInverted(t *testing.T) {
	low := Assess(metricsWith(map[string]float64{model.MetricBreakevenOccupancy: 80}))
	mid := Assess(metricsWith(map[string]float64{model.MetricBreakevenOccupancy: 88}))
	high := Assess(metricsWith(map[string]float64{model.MetricBreakevenOccupancy: 95}))
	assert.Equal(t, RatingExcellent, low.MetricScores[model.MetricBreakevenOccupancy])
	assert.Equal(t, RatingGood, mid.MetricScores[model.MetricBreakevenOccupancy])
	assert.Equal(t, RatingFair, high.MetricScores[model.MetricBreakevenOccupancy])
}
