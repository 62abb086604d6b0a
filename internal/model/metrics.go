package model

import "time"

// Core metric names. These are the only metrics the calculator set knows;
// selection of anything else is reported through ValidationErrors.
const (
	MetricCapRate            = "capRate"
	MetricCashOnCash         = "cashOnCash"
	MetricDSCR               = "dscr"
	MetricLTV                = "ltv"
	MetricGRM                = "grm"
	MetricPricePerSF         = "pricePerSF"
	MetricPricePerUnit       = "pricePerUnit"
	MetricEGI                = "egi"
	MetricBreakevenOccupancy = "breakevenOccupancy"
	MetricIRR                = "irr"
	MetricROI                = "roi"
)

// CoreMetrics lists every core metric name in presentation order.
var CoreMetrics = []string{
	MetricCapRate,
	MetricCashOnCash,
	MetricDSCR,
	MetricLTV,
	MetricGRM,
	MetricPricePerSF,
	MetricPricePerUnit,
	MetricEGI,
	MetricBreakevenOccupancy,
	MetricIRR,
	MetricROI,
}

// MetricSelection maps metric name to whether it was requested.
type MetricSelection map[string]bool

// AllCoreMetrics returns a selection with every core metric enabled.
func AllCoreMetrics() MetricSelection {
	sel := make(MetricSelection, len(CoreMetrics))
	for _, m := range CoreMetrics {
		sel[m] = true
	}
	return sel
}

// Requested returns the requested metric names in canonical order.
func (s MetricSelection) Requested() []string {
	var out []string
	for _, m := range CoreMetrics {
		if s[m] {
			out = append(out, m)
		}
	}
	// Unknown names are carried so the validator can report them.
	for name, on := range s {
		if on && !isCoreMetric(name) {
			out = append(out, name)
		}
	}
	return out
}

func isCoreMetric(name string) bool {
	for _, m := range CoreMetrics {
		if m == name {
			return true
		}
	}
	return false
}

// ComputedMetrics is the result of one engine call. Values is sparse: a
// metric appears there only if it was requested and computable; a requested
// metric that failed validation appears in ValidationErrors instead. One
// metric's failure never affects another.
type ComputedMetrics struct {
	RunID      string    `json:"runId"`
	ComputedAt time.Time `json:"computedAt"`

	Values           map[string]float64 `json:"values"`
	ValidationErrors map[string]string  `json:"validationErrors,omitempty"`

	// AssetAnalysis holds package bundle payloads keyed by descriptive name.
	AssetAnalysis map[string]any `json:"assetAnalysis,omitempty"`

	// Assumptions surfaces every placeholder value a package handler
	// synthesized in place of missing market data.
	Assumptions map[string]float64 `json:"assumptions,omitempty"`
}
