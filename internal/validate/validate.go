// Package validate gates metric computation on field availability.
//
// Each core metric declares the facts fields its formula needs. A field is
// usable when it is present and non-degenerate (non-zero; rates additionally
// within (0,100]). The requirement sets are data, so the defaulting policy is
// itself testable.
package validate

import (
	"fmt"
	"strings"

	"github.com/sells-group/deal-analyzer/internal/model"
)

// fieldCheck reports whether one named field is usable for computation.
type fieldCheck struct {
	name string
	ok   func(*model.PropertyFacts) bool
}

func positive(name string, get func(*model.PropertyFacts) float64) fieldCheck {
	return fieldCheck{name: name, ok: func(f *model.PropertyFacts) bool { return get(f) > 0 }}
}

func nonZero(name string, get func(*model.PropertyFacts) float64) fieldCheck {
	return fieldCheck{name: name, ok: func(f *model.PropertyFacts) bool { return get(f) != 0 }}
}

func rate(name string, get func(*model.PropertyFacts) float64) fieldCheck {
	return fieldCheck{name: name, ok: func(f *model.PropertyFacts) bool {
		v := get(f)
		return v > 0 && v <= 100
	}}
}

// requirements maps each core metric to its required-field checks.
var requirements = map[string][]fieldCheck{
	model.MetricCapRate: {
		nonZero("currentNOI", func(f *model.PropertyFacts) float64 { return f.CurrentNOI }),
		positive("purchasePrice", func(f *model.PropertyFacts) float64 { return f.PurchasePrice }),
	},
	model.MetricCashOnCash: {
		nonZero("annualCashFlow", func(f *model.PropertyFacts) float64 { return f.AnnualCashFlow }),
		positive("totalCashInvested", func(f *model.PropertyFacts) float64 { return f.TotalCashInvested }),
	},
	model.MetricDSCR: {
		nonZero("currentNOI", func(f *model.PropertyFacts) float64 { return f.CurrentNOI }),
		positive("loanAmount", func(f *model.PropertyFacts) float64 { return f.LoanAmount }),
		rate("interestRate", func(f *model.PropertyFacts) float64 { return f.InterestRate }),
		positive("loanTermYears", func(f *model.PropertyFacts) float64 { return f.LoanTermYears }),
	},
	model.MetricLTV: {
		positive("loanAmount", func(f *model.PropertyFacts) float64 { return f.LoanAmount }),
		positive("purchasePrice", func(f *model.PropertyFacts) float64 { return f.PurchasePrice }),
	},
	model.MetricGRM: {
		positive("purchasePrice", func(f *model.PropertyFacts) float64 { return f.PurchasePrice }),
		positive("grossIncome", func(f *model.PropertyFacts) float64 { return f.GrossIncome }),
	},
	model.MetricPricePerSF: {
		positive("purchasePrice", func(f *model.PropertyFacts) float64 { return f.PurchasePrice }),
		positive("squareFootage", func(f *model.PropertyFacts) float64 { return f.LeasableSF() }),
	},
	model.MetricPricePerUnit: {
		positive("purchasePrice", func(f *model.PropertyFacts) float64 { return f.PurchasePrice }),
		positive("numberOfUnits", func(f *model.PropertyFacts) float64 { return float64(f.NumberOfUnits) }),
	},
	model.MetricEGI: {
		positive("grossIncome", func(f *model.PropertyFacts) float64 { return f.GrossIncome }),
		rate("occupancyRate", func(f *model.PropertyFacts) float64 { return f.OccupancyRate }),
	},
	model.MetricBreakevenOccupancy: {
		positive("operatingExpenses", func(f *model.PropertyFacts) float64 { return f.OperatingExpenses }),
		positive("grossIncome", func(f *model.PropertyFacts) float64 { return f.GrossIncome }),
		positive("loanAmount", func(f *model.PropertyFacts) float64 { return f.LoanAmount }),
		rate("interestRate", func(f *model.PropertyFacts) float64 { return f.InterestRate }),
		positive("loanTermYears", func(f *model.PropertyFacts) float64 { return f.LoanTermYears }),
	},
	model.MetricIRR: {
		nonZero("currentNOI", func(f *model.PropertyFacts) float64 { return f.CurrentNOI }),
		nonZero("projectedNOI", func(f *model.PropertyFacts) float64 { return f.ProjectedNOI }),
		nonZero("annualCashFlow", func(f *model.PropertyFacts) float64 { return f.AnnualCashFlow }),
		positive("totalCashInvested", func(f *model.PropertyFacts) float64 { return f.TotalCashInvested }),
		positive("holdingPeriodYears", func(f *model.PropertyFacts) float64 { return f.HoldingPeriodYears }),
	},
	model.MetricROI: {
		nonZero("annualCashFlow", func(f *model.PropertyFacts) float64 { return f.AnnualCashFlow }),
		positive("totalCashInvested", func(f *model.PropertyFacts) float64 { return f.TotalCashInvested }),
	},
}

// CanCompute reports whether every field the metric's formula needs is
// present and non-degenerate. Unknown metrics are never computable.
func CanCompute(metric string, facts *model.PropertyFacts) bool {
	checks, ok := requirements[metric]
	if !ok {
		return false
	}
	for _, c := range checks {
		if !c.ok(facts) {
			return false
		}
	}
	return true
}

// ExplainMissing returns a one-sentence explanation naming every missing or
// degenerate field for the metric. Empty string when the metric is
// computable.
func ExplainMissing(metric string, facts *model.PropertyFacts) string {
	checks, ok := requirements[metric]
	if !ok {
		return fmt.Sprintf("unknown metric %q", metric)
	}

	var missing []string
	for _, c := range checks {
		if !c.ok(facts) {
			missing = append(missing, c.name)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf("cannot compute %s: missing %s", metric, strings.Join(missing, ", "))
}

// RequiredFields returns the field names a metric needs, in declaration
// order. Nil for unknown metrics.
func RequiredFields(metric string) []string {
	checks, ok := requirements[metric]
	if !ok {
		return nil
	}
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.name
	}
	return names
}
