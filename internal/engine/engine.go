// Package engine is the top-level entry point: it gates each requested
// metric through the validator, runs the strict calculators, executes any
// requested analysis packages, and assembles one ComputedMetrics result.
//
// The engine itself is stateless; every call is a pure transform of the
// facts apart from the run ID and the injectable clock.
package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/deal-analyzer/internal/bundle"
	"github.com/sells-group/deal-analyzer/internal/finance"
	"github.com/sells-group/deal-analyzer/internal/model"
	"github.com/sells-group/deal-analyzer/internal/validate"
)

// Projection defaults applied when the facts omit hold or exit inputs. Both
// are surfaced on the result's Assumptions when used.
const (
	assumedHoldYears      = 5.0
	assumedExitCapRatePct = 8.0
)

// Analyzer computes metrics and runs analysis packages over property facts.
type Analyzer struct {
	registry *bundle.Registry
	now      time.Time // injectable for testing
	log      *zap.Logger
}

// New creates an Analyzer with the full package registry.
func New(defaults bundle.Defaults) *Analyzer {
	return &Analyzer{
		registry: bundle.NewRegistry(defaults),
		now:      time.Now(),
		log:      zap.L().With(zap.String("component", "engine")),
	}
}

// WithNow sets a fixed time for testing.
func (a *Analyzer) WithNow(t time.Time) *Analyzer {
	a.now = t
	return a
}

// Registry exposes the package registry for listing.
func (a *Analyzer) Registry() *bundle.Registry {
	return a.registry
}

// Analyze computes every requested metric plus the named analysis packages.
//
// Metrics run on the gated path: a metric whose preconditions fail is
// recorded under ValidationErrors and never aborts the rest of the batch.
// Values are rounded to two decimals. Package payloads merge under
// AssetAnalysis keyed by package ID; their assumed inputs merge under
// Assumptions.
func (a *Analyzer) Analyze(facts *model.PropertyFacts, selection model.MetricSelection, packageIDs ...string) *model.ComputedMetrics {
	res := &model.ComputedMetrics{
		RunID:      uuid.NewString(),
		ComputedAt: a.now,
		Values:     map[string]float64{},
	}

	for _, metric := range selection.Requested() {
		if !validate.CanCompute(metric, facts) {
			a.addError(res, metric, validate.ExplainMissing(metric, facts))
			continue
		}
		v, err := a.compute(metric, facts, res)
		if err != nil {
			a.addError(res, metric, err.Error())
			continue
		}
		res.Values[metric] = round2(v)
	}

	for _, id := range packageIDs {
		pkg, known := a.registry.Run(id, facts, a.now)
		if !known || pkg == nil {
			continue
		}
		if res.AssetAnalysis == nil {
			res.AssetAnalysis = map[string]any{}
		}
		res.AssetAnalysis[pkg.Key] = pkg.Payload
		for k, v := range pkg.Assumptions {
			a.assume(res, k, v)
		}
	}

	a.log.Debug("analysis complete",
		zap.String("runId", res.RunID),
		zap.Int("metrics", len(res.Values)),
		zap.Int("validationErrors", len(res.ValidationErrors)),
		zap.Int("packages", len(res.AssetAnalysis)))
	return res
}

// compute dispatches one validated metric to its strict calculator.
func (a *Analyzer) compute(metric string, f *model.PropertyFacts, res *model.ComputedMetrics) (float64, error) {
	switch metric {
	case model.MetricCapRate:
		return finance.CapRate(f.CurrentNOI, f.PurchasePrice)
	case model.MetricCashOnCash:
		return finance.CashOnCash(f.AnnualCashFlow, f.TotalCashInvested)
	case model.MetricDSCR:
		return finance.DSCR(f.CurrentNOI, f.LoanAmount, f.InterestRate, f.LoanTermYears)
	case model.MetricLTV:
		return finance.LTV(f.LoanAmount, f.PurchasePrice)
	case model.MetricGRM:
		return finance.GRM(f.PurchasePrice, f.GrossIncome)
	case model.MetricPricePerSF:
		return finance.PricePerSF(f.PurchasePrice, f.LeasableSF())
	case model.MetricPricePerUnit:
		return finance.PricePerUnit(f.PurchasePrice, f.NumberOfUnits)
	case model.MetricEGI:
		return finance.EffectiveGrossIncome(f.GrossIncome, f.OccupancyRate)
	case model.MetricBreakevenOccupancy:
		return finance.BreakevenOccupancy(f.OperatingExpenses, f.GrossIncome, f.LoanAmount, f.InterestRate, f.LoanTermYears)
	case model.MetricIRR:
		hold, exitCap := a.projectionInputs(f, res)
		return finance.ApproxIRR(f.CurrentNOI, f.ProjectedNOI, f.AnnualCashFlow, f.TotalCashInvested, hold, exitCap)
	case model.MetricROI:
		hold, exitCap := a.projectionInputs(f, res)
		return finance.ApproxROI(f.CurrentNOI, f.ProjectedNOI, f.AnnualCashFlow, f.TotalCashInvested, hold, exitCap)
	default:
		// Requested() carries unknown names through so they are reported,
		// but CanCompute already rejected them.
		return 0, nil
	}
}

// projectionInputs resolves holding period and exit cap rate, assuming the
// documented defaults when the facts omit them.
func (a *Analyzer) projectionInputs(f *model.PropertyFacts, res *model.ComputedMetrics) (hold, exitCap float64) {
	hold = f.HoldingPeriodYears
	if hold <= 0 {
		hold = assumedHoldYears
		a.assume(res, "holdingPeriodYears", assumedHoldYears)
	}
	exitCap = f.ExitCapRate
	if exitCap <= 0 {
		exitCap = assumedExitCapRatePct
		a.assume(res, "exitCapRatePct", assumedExitCapRatePct)
	}
	return hold, exitCap
}

func (a *Analyzer) addError(res *model.ComputedMetrics, metric, msg string) {
	if res.ValidationErrors == nil {
		res.ValidationErrors = map[string]string{}
	}
	res.ValidationErrors[metric] = msg
}

func (a *Analyzer) assume(res *model.ComputedMetrics, key string, v float64) {
	if res.Assumptions == nil {
		res.Assumptions = map[string]float64{}
	}
	res.Assumptions[key] = v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
