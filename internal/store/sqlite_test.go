package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleRun(name, rating string) *model.AnalysisRun {
	return &model.AnalysisRun{
		PropertyName: name,
		Rating:       rating,
		Facts: &model.PropertyFacts{
			PropertyName:  name,
			PurchasePrice: 5_000_000,
			CurrentNOI:    400_000,
		},
		Result: &model.ComputedMetrics{
			RunID:  "run-" + name,
			Values: map[string]float64{model.MetricCapRate: 8.0},
		},
	}
}

func TestSQLite_SaveAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run := sampleRun("Oak Plaza", "Good")
	require.NoError(t, st.SaveRun(ctx, run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oak Plaza", got.PropertyName)
	assert.Equal(t, "Good", got.Rating)
	assert.InDelta(t, 5_000_000.0, got.Facts.PurchasePrice, 0.01)
	assert.InDelta(t, 8.0, got.Result.Values[model.MetricCapRate], 0.01)
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRuns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRun(ctx, sampleRun("Oak Plaza", "Good")))
	require.NoError(t, st.SaveRun(ctx, sampleRun("Elm Tower", "Excellent")))
	require.NoError(t, st.SaveRun(ctx, sampleRun("Oak Plaza", "Fair")))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	oak, err := st.ListRuns(ctx, RunFilter{PropertyName: "Oak Plaza"})
	require.NoError(t, err)
	assert.Len(t, oak, 2)

	excellent, err := st.ListRuns(ctx, RunFilter{Rating: "Excellent"})
	require.NoError(t, err)
	require.Len(t, excellent, 1)
	assert.Equal(t, "Elm Tower", excellent[0].PropertyName)
}

func TestSQLite_ListRuns_Limit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.SaveRun(ctx, sampleRun("Oak Plaza", "Good")))
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLite_SaveRun_KeepsSuppliedID(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run := sampleRun("Oak Plaza", "Good")
	run.ID = "fixed-id"
	require.NoError(t, st.SaveRun(ctx, run))

	got, err := st.GetRun(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got.ID)
}
