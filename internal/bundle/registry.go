// Package bundle routes analysis package IDs to their handlers. Each package
// composes the scoring engines and calculators into one named, self-contained
// piece of analysis over a property facts bag.
//
// Handlers never fail: a handler whose minimal facts are absent returns nil
// and the package is silently skipped. Where a handler has to assume a value
// the facts did not carry, the assumption is recorded on the result.
package bundle

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/deal-analyzer/internal/model"
)

// Placeholder values used when the facts omit market context a handler needs.
const (
	defaultSubmarketVacancyPct = 15.0
	defaultNationalAvgWage     = 18.50
	hoursPerWorkYear           = 2080
)

// Defaults are the assumed market figures handlers fall back on. Zero fields
// take the package-level placeholder constants.
type Defaults struct {
	SubmarketVacancyPct float64
	NationalAvgWage     float64
}

// Result is one package's output: a payload of named findings plus any
// assumed inputs that went into them.
type Result struct {
	Key         string             `json:"key"`
	Payload     map[string]any     `json:"payload"`
	Assumptions map[string]float64 `json:"assumptions,omitempty"`
}

func (r *Result) put(key string, v any) {
	if r.Payload == nil {
		r.Payload = map[string]any{}
	}
	r.Payload[key] = v
}

func (r *Result) assume(key string, v float64) {
	if r.Assumptions == nil {
		r.Assumptions = map[string]float64{}
	}
	r.Assumptions[key] = v
}

// Package is one registered analysis package.
type Package struct {
	ID          string
	Description string
	run         func(rc *runCtx) *Result
}

// Registry maps package IDs to their handlers.
type Registry struct {
	packages map[string]Package
	order    []string // insertion order for deterministic iteration
	defaults Defaults
}

// NewRegistry creates a registry populated with all 40 packages.
func NewRegistry(defaults Defaults) *Registry {
	if defaults.SubmarketVacancyPct <= 0 {
		defaults.SubmarketVacancyPct = defaultSubmarketVacancyPct
	}
	if defaults.NationalAvgWage <= 0 {
		defaults.NationalAvgWage = defaultNationalAvgWage
	}
	r := &Registry{
		packages: make(map[string]Package),
		defaults: defaults,
	}

	registerOffice(r)
	registerRetail(r)
	registerIndustrial(r)
	registerMultifamily(r)
	registerMixedUse(r)
	registerDeal(r)

	return r
}

// Register adds a package to the registry.
func (r *Registry) Register(p Package) {
	r.packages[p.ID] = p
	r.order = append(r.order, p.ID)
}

// Run executes the package with the given ID against the facts. The bool
// reports whether the ID is registered; an unknown ID logs one warning and
// returns (nil, false). A registered package whose minimal facts are absent
// returns (nil, true): skipped, not an error.
func (r *Registry) Run(id string, facts *model.PropertyFacts, now time.Time) (*Result, bool) {
	p, ok := r.packages[id]
	if !ok {
		zap.L().Warn("unknown analysis package", zap.String("package", id))
		return nil, false
	}
	return p.run(newRunCtx(id, facts, now, r.defaults)), true
}

// IDs returns all registered package IDs in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Packages returns all registered packages in registration order.
func (r *Registry) Packages() []Package {
	out := make([]Package, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.packages[id])
	}
	return out
}
