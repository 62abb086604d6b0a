package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/deal-analyzer/internal/bundle"
	"github.com/sells-group/deal-analyzer/internal/engine"
	"github.com/sells-group/deal-analyzer/internal/model"
	"github.com/sells-group/deal-analyzer/internal/store"
)

// loadFacts reads a property facts file. JSON and YAML are supported,
// selected by file extension.
func loadFacts(path string) (*model.PropertyFacts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read facts file %s", path)
	}

	facts := &model.PropertyFacts{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, facts); err != nil {
			return nil, eris.Wrapf(err, "parse facts file %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, facts); err != nil {
			return nil, eris.Wrapf(err, "parse facts file %s", path)
		}
	default:
		return nil, eris.Errorf("facts file %s: unsupported extension (want .json, .yaml, or .yml)", path)
	}

	return facts, nil
}

// parseMetricSelection builds a metric selection from a comma-separated
// flag value. Empty means all core metrics.
func parseMetricSelection(s string) model.MetricSelection {
	if strings.TrimSpace(s) == "" {
		return model.AllCoreMetrics()
	}
	sel := model.MetricSelection{}
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			sel[name] = true
		}
	}
	return sel
}

// newAnalyzer builds the engine from the configured assumption defaults.
func newAnalyzer() *engine.Analyzer {
	return engine.New(bundle.Defaults{
		SubmarketVacancyPct: cfg.Analyze.AssumedSubmarketVacancyPct,
		NationalAvgWage:     cfg.Analyze.AssumedNationalAvgWage,
	})
}

// initStore opens the configured run history database.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open run store")
	}
	return st, nil
}
