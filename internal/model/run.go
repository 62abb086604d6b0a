package model

import "time"

// AnalysisRun is one persisted analysis: the facts that went in, the metrics
// that came out, and the overall rating if the run was assessed.
type AnalysisRun struct {
	ID           string           `json:"id"`
	PropertyName string           `json:"propertyName"`
	Rating       string           `json:"rating,omitempty"`
	Facts        *PropertyFacts   `json:"facts"`
	Result       *ComputedMetrics `json:"result"`
	CreatedAt    time.Time        `json:"createdAt"`
}
