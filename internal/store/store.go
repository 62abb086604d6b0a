// Package store persists analysis run history for the CLI and server
// surfaces. The core engine never touches it.
package store

import (
	"context"

	"github.com/sells-group/deal-analyzer/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	PropertyName string `json:"property_name,omitempty"`
	Rating       string `json:"rating,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}

// Store defines the run history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, run *model.AnalysisRun) error
	GetRun(ctx context.Context, runID string) (*model.AnalysisRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.AnalysisRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
