// Package assess rolls computed metrics up into a single deal rating. Six
// return and coverage metrics participate; each maps to a category through a
// fixed two-threshold table, and the category counts decide the overall call.
package assess

import (
	"github.com/sells-group/deal-analyzer/internal/model"
)

// Rating is a deal or metric category.
type Rating string

const (
	RatingExcellent    Rating = "Excellent"
	RatingGood         Rating = "Good"
	RatingFair         Rating = "Fair"
	RatingPoor         Rating = "Poor"
	RatingInsufficient Rating = "Insufficient"
)

// DealAssessment is the aggregate view of one analysis run.
type DealAssessment struct {
	Overall        Rating            `json:"overall"`
	Recommendation string            `json:"recommendation"`
	MetricScores   map[string]Rating `json:"metricScores"`
	ActiveMetrics  int               `json:"activeMetrics"`
}

// threshold maps a metric value to a category: at or beyond excellent the
// metric rates Excellent, at or beyond good it rates Good, otherwise Fair.
// Inverted metrics (breakeven occupancy) rate better the lower they are.
type threshold struct {
	excellent float64
	good      float64
	inverted  bool
}

func (t threshold) rate(v float64) Rating {
	if t.inverted {
		switch {
		case v <= t.excellent:
			return RatingExcellent
		case v <= t.good:
			return RatingGood
		default:
			return RatingFair
		}
	}
	switch {
	case v >= t.excellent:
		return RatingExcellent
	case v >= t.good:
		return RatingGood
	default:
		return RatingFair
	}
}

// thresholds are the participating metrics and their category cut points.
// Metrics outside this table never influence the assessment.
var thresholds = map[string]threshold{
	model.MetricCapRate:            {excellent: 8, good: 6},
	model.MetricCashOnCash:         {excellent: 8, good: 6},
	model.MetricDSCR:               {excellent: 1.25, good: 1.1},
	model.MetricIRR:                {excellent: 12, good: 8},
	model.MetricROI:                {excellent: 12, good: 8},
	model.MetricBreakevenOccupancy: {excellent: 85, good: 90, inverted: true},
}

// Fixed recommendation text per overall rating.
var recommendations = map[Rating]string{
	RatingExcellent:    "Strong deal across return and coverage metrics; pursue aggressively.",
	RatingGood:         "Solid fundamentals; proceed with standard due diligence.",
	RatingFair:         "Mixed signals; underwrite conservatively and negotiate on price.",
	RatingPoor:         "Weak metrics across the board; pass unless the basis improves materially.",
	RatingInsufficient: "Not enough computed metrics to assess; supply more property facts.",
}

// Assess rates each participating computed metric and derives the overall
// category. Ties between Good and the other counts resolve toward Good. With
// no participating metrics computed the deal is unratable, not poor.
func Assess(metrics *model.ComputedMetrics) DealAssessment {
	a := DealAssessment{MetricScores: map[string]Rating{}}

	var excellent, good, fair int
	for name, t := range thresholds {
		v, ok := metrics.Values[name]
		if !ok {
			continue
		}
		r := t.rate(v)
		a.MetricScores[name] = r
		a.ActiveMetrics++
		switch r {
		case RatingExcellent:
			excellent++
		case RatingGood:
			good++
		case RatingFair:
			fair++
		}
	}

	switch {
	case a.ActiveMetrics == 0:
		a.Overall = RatingInsufficient
	case excellent > good && excellent > fair:
		a.Overall = RatingExcellent
	case good >= excellent && good >= fair:
		a.Overall = RatingGood
	case fair > excellent && fair > good:
		a.Overall = RatingFair
	default:
		a.Overall = RatingPoor
	}
	a.Recommendation = recommendations[a.Overall]
	return a
}
