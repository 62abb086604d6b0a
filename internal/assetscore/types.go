// Package assetscore implements the property-type-specific scoring engines:
// office tenant credit, retail co-tenancy and sales performance, industrial
// building functionality, multifamily revenue performance, and mixed-use
// synergy.
//
// Engines consume canonical records from the adapt package and trust them to
// be well-formed; they do not re-validate. All time-relative quantities take
// an explicit reference time. Weights, thresholds, and clamp bounds are
// policy constants, not tunables.
package assetscore

import "math"

// RiskLevel is the four-level classification shared by the scoring engines.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskElevated RiskLevel = "Elevated"
	RiskHigh     RiskLevel = "High"
)

// riskFromScore maps a 0-100 score to a risk level at fixed cut points.
func riskFromScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskModerate
	case score >= 40:
		return RiskElevated
	default:
		return RiskHigh
	}
}

// creditWeight returns the enhanced-WALT weighting factor for a rating tier.
func creditWeight(rating string) float64 {
	switch rating {
	case "AAA":
		return 1.2
	case "AA":
		return 1.1
	case "A":
		return 1.0
	default:
		return 0.9
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
