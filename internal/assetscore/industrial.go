package assetscore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// Building functionality composite weights.
const (
	weightClearHeight = 0.25
	weightLoading     = 0.25
	weightPower       = 0.20
	weightLayout      = 0.20
	weightSpecial     = 0.10
)

// typeTargets holds per-industrial-type minimum and ideal thresholds.
type typeTargets struct {
	minClearFt, idealClearFt float64
	minDocksPer10k, idealDocksPer10k float64
	minWattsPerSF, idealWattsPerSF   float64
}

// industrialTargets are the property-type-specific thresholds the sub-scores
// are measured against.
var industrialTargets = map[string]typeTargets{
	"warehouse":     {24, 32, 0.5, 1.0, 0.5, 1.5},
	"manufacturing": {16, 24, 0.3, 0.6, 3.0, 6.0},
	"flex":          {14, 18, 0.2, 0.5, 1.5, 3.0},
	"cold_storage":  {28, 36, 0.8, 1.2, 4.0, 8.0},
	"last_mile":     {18, 28, 1.0, 2.0, 1.0, 2.5},
}

// BuildingClass is the industrial classification outcome.
type BuildingClass string

const (
	ClassA BuildingClass = "Class A"
	ClassB BuildingClass = "Class B"
	ClassC BuildingClass = "Class C"
)

// Improvement is one ranked remediation opportunity.
type Improvement struct {
	Component string  `json:"component"`
	Score     float64 `json:"score"`
	Note      string  `json:"note"`
}

// FunctionalityResult is the industrial building functionality assessment.
type FunctionalityResult struct {
	Composite      float64       `json:"composite"`
	Class          BuildingClass `json:"class"`
	IndustrialType string        `json:"industrialType"`
	Components     map[string]float64 `json:"components"`
	Improvements   []Improvement `json:"improvements"`
}

// Functionality computes the industrial building functionality composite:
// 0.25 clear height + 0.25 loading + 0.20 power + 0.20 layout + 0.10 special
// features, each sub-score measured against the building type's minimum and
// ideal targets. Classification: Class A needs composite >= 85 and clear
// height >= 32 ft; Class B >= 70 and >= 24 ft; otherwise Class C.
func Functionality(spec adapt.CanonicalBuildingSpec) FunctionalityResult {
	targets, ok := industrialTargets[normalizeIndustrialType(spec.IndustrialType)]
	if !ok {
		targets = industrialTargets["warehouse"]
	}

	components := map[string]float64{
		"clearHeight":     thresholdScore(spec.ClearHeightFt, targets.minClearFt, targets.idealClearFt),
		"loading":         loadingScore(spec, targets),
		"power":           powerScore(spec, targets),
		"layout":          layoutScore(spec.ColumnSpacingFt),
		"specialFeatures": specialFeaturesScore(spec),
	}

	composite := components["clearHeight"]*weightClearHeight +
		components["loading"]*weightLoading +
		components["power"]*weightPower +
		components["layout"]*weightLayout +
		components["specialFeatures"]*weightSpecial

	composite = round2(clamp100(composite))
	for k, v := range components {
		components[k] = round2(v)
	}

	return FunctionalityResult{
		Composite:      composite,
		Class:          classify(composite, spec.ClearHeightFt),
		IndustrialType: normalizeIndustrialType(spec.IndustrialType),
		Components:     components,
		Improvements:   rankImprovements(components),
	}
}

func normalizeIndustrialType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t = strings.ReplaceAll(t, " ", "_")
	t = strings.ReplaceAll(t, "-", "_")
	if _, ok := industrialTargets[t]; ok {
		return t
	}
	return "warehouse"
}

// thresholdScore maps a measurement onto 0-100 against a minimum and ideal:
// zero below half the minimum, linear up to 60 at the minimum, linear from
// 60 to 100 between minimum and ideal, and 100 at or above the ideal.
func thresholdScore(value, min, ideal float64) float64 {
	switch {
	case value <= min/2:
		return 0
	case value < min:
		// Half-min..min spans 0..60.
		return (value - min/2) / (min - min/2) * 60
	case value < ideal:
		return 60 + (value-min)/(ideal-min)*40
	default:
		return 100
	}
}

// loadingScore measures dock door density against type targets and derates
// by truck court depth: >=130 ft full credit, >=120 x0.9, >=110 x0.7,
// anything shallower x0.5.
func loadingScore(spec adapt.CanonicalBuildingSpec, targets typeTargets) float64 {
	if spec.SquareFootage <= 0 {
		return 0
	}
	docksPer10k := float64(spec.DockDoors) / (spec.SquareFootage / 10_000)
	score := thresholdScore(docksPer10k, targets.minDocksPer10k, targets.idealDocksPer10k)

	// Drive-in doors offset a thin dock count in smaller buildings.
	if spec.DriveInDoors > 0 && score < 60 {
		score += 5
	}

	switch {
	case spec.TruckCourtDepthFt >= 130:
		// full credit
	case spec.TruckCourtDepthFt >= 120:
		score *= 0.9
	case spec.TruckCourtDepthFt >= 110:
		score *= 0.7
	default:
		score *= 0.5
	}
	return clamp100(score)
}

// powerScore converts capacity to watts per SF and scores against targets.
func powerScore(spec adapt.CanonicalBuildingSpec, targets typeTargets) float64 {
	if spec.SquareFootage <= 0 || spec.PowerCapacityKW <= 0 {
		return 0
	}
	wattsPerSF := spec.PowerCapacityKW * 1000 / spec.SquareFootage
	return thresholdScore(wattsPerSF, targets.minWattsPerSF, targets.idealWattsPerSF)
}

// layoutScore rewards wide column spacing; an unknown spacing is neutral.
func layoutScore(columnSpacingFt float64) float64 {
	switch {
	case columnSpacingFt >= 50:
		return 100
	case columnSpacingFt >= 40:
		return 80
	case columnSpacingFt >= 30:
		return 60
	case columnSpacingFt > 0:
		return 40
	default:
		return 50
	}
}

// specialFeaturesScore: ESFR sprinklers +40, rail served +20, trailer
// parking +20, cross-dock +20, capped at 100.
func specialFeaturesScore(spec adapt.CanonicalBuildingSpec) float64 {
	var score float64
	if strings.EqualFold(spec.SprinklerSystem, "esfr") {
		score += 40
	}
	if spec.RailServed {
		score += 20
	}
	if spec.TrailerParking {
		score += 20
	}
	if spec.CrossDock {
		score += 20
	}
	return clamp100(score)
}

func classify(composite, clearHeightFt float64) BuildingClass {
	switch {
	case composite >= 85 && clearHeightFt >= 32:
		return ClassA
	case composite >= 70 && clearHeightFt >= 24:
		return ClassB
	default:
		return ClassC
	}
}

// improvementNotes are the remediation texts per component, used to build
// the ranked opportunity list.
var improvementNotes = map[string]string{
	"clearHeight":     "clear height below ideal for the building type; racking density is constrained",
	"loading":         "dock door count or truck court depth limits throughput",
	"power":           "power capacity per SF below type requirements; service upgrade needed for modern users",
	"layout":          "narrow column spacing restricts racking and staging layout",
	"specialFeatures": "lacks ESFR, rail, trailer parking, or cross-dock configuration",
}

// rankImprovements lists components weakest-first with remediation notes,
// skipping anything already at or above 85.
func rankImprovements(components map[string]float64) []Improvement {
	var out []Improvement
	for name, score := range components {
		if score >= 85 {
			continue
		}
		out = append(out, Improvement{
			Component: name,
			Score:     score,
			Note:      improvementNotes[name],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Component < out[j].Component
	})
	return out
}

// TenantQuality scores an industrial rent roll on credit and term, from a
// base of 60: investment-grade credit +15, NR -5, WALT >= 5y +15, >= 3y +5,
// < 2y -10, single-tenant concentration -10.
func TenantQuality(tenants []adapt.CanonicalTenant, walt float64) (float64, RiskLevel) {
	score := 60.0

	var invGrade int
	for i := range tenants {
		switch tenants[i].CreditRating {
		case "AAA", "AA", "A", "BBB":
			invGrade++
		}
	}
	if len(tenants) > 0 {
		if invGrade == len(tenants) {
			score += 15
		} else if invGrade == 0 {
			score -= 5
		}
	}

	switch {
	case walt >= 5:
		score += 15
	case walt >= 3:
		score += 5
	case walt < 2:
		score -= 10
	}

	if len(tenants) == 1 {
		score -= 10
	}

	score = clamp100(score)
	return round2(score), riskFromScore(score)
}

func (f FunctionalityResult) String() string {
	return fmt.Sprintf("%s (%.1f, %s)", f.Class, f.Composite, f.IndustrialType)
}
