package bundle

import (
	"math"
	"time"

	"github.com/sells-group/deal-analyzer/internal/adapt"
	"github.com/sells-group/deal-analyzer/internal/model"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// runCtx carries one package run's inputs and lazily-adapted records, so
// handlers sharing the same facts don't re-adapt the rent roll.
type runCtx struct {
	id       string
	facts    *model.PropertyFacts
	now      time.Time
	defaults Defaults

	ad         *adapt.Adapter
	tenantsRec []adapt.CanonicalTenant
	unitsRec   []adapt.CanonicalUnit
	specRec    *adapt.CanonicalBuildingSpec
}

func newRunCtx(id string, facts *model.PropertyFacts, now time.Time, defaults Defaults) *runCtx {
	return &runCtx{
		id:       id,
		facts:    facts,
		now:      now,
		defaults: defaults,
		ad:       adapt.New(now),
	}
}

func (rc *runCtx) result() *Result {
	return &Result{Key: rc.id, Payload: map[string]any{}}
}

func (rc *runCtx) tenants() []adapt.CanonicalTenant {
	if rc.tenantsRec == nil && len(rc.facts.Tenants) > 0 {
		rc.tenantsRec = rc.ad.Tenants(rc.facts.Tenants)
	}
	return rc.tenantsRec
}

func (rc *runCtx) units() []adapt.CanonicalUnit {
	if rc.unitsRec == nil && len(rc.facts.Units) > 0 {
		rc.unitsRec = rc.ad.Units(rc.facts.Units)
	}
	return rc.unitsRec
}

// buildingSpec assembles the canonical industrial record, preferring the raw
// nested spec and backfilling from flat facts fields.
func (rc *runCtx) buildingSpec() adapt.CanonicalBuildingSpec {
	if rc.specRec != nil {
		return *rc.specRec
	}
	var spec adapt.CanonicalBuildingSpec
	if len(rc.facts.BuildingSpec) > 0 {
		spec = rc.ad.BuildingSpec(rc.facts.BuildingSpec)
	}
	f := rc.facts
	if spec.IndustrialType == "" {
		spec.IndustrialType = f.IndustrialType
	}
	if spec.ClearHeightFt == 0 {
		spec.ClearHeightFt = f.ClearHeightFt
	}
	if spec.DockDoors == 0 {
		spec.DockDoors = f.NumDockDoors
	}
	if spec.DriveInDoors == 0 {
		spec.DriveInDoors = f.NumDriveInDoors
	}
	if spec.TruckCourtDepthFt == 0 {
		spec.TruckCourtDepthFt = f.TruckCourtDepthFt
	}
	if spec.PowerCapacityKW == 0 {
		spec.PowerCapacityKW = f.PowerCapacityKW
	}
	if spec.ColumnSpacingFt == 0 {
		spec.ColumnSpacingFt = f.ColumnSpacingFt
	}
	if spec.SquareFootage == 0 {
		spec.SquareFootage = f.LeasableSF()
	}
	if spec.SprinklerSystem == "" {
		spec.SprinklerSystem = f.SprinklerSystem
	}
	spec.RailServed = spec.RailServed || f.RailServed
	spec.CrossDock = spec.CrossDock || f.CrossDock
	spec.TrailerParking = spec.TrailerParking || f.TrailerParking
	rc.specRec = &spec
	return spec
}

// submarketVacancy returns the facts' submarket vacancy, falling back to the
// assumed default and recording the assumption on the result.
func (rc *runCtx) submarketVacancy(res *Result) float64 {
	if rc.facts.SubmarketVacancy > 0 {
		return rc.facts.SubmarketVacancy
	}
	if rc.facts.MarketVacancy > 0 {
		return rc.facts.MarketVacancy
	}
	res.assume("submarketVacancyPct", rc.defaults.SubmarketVacancyPct)
	return rc.defaults.SubmarketVacancyPct
}

// householdIncome returns the facts' median household income, deriving one
// from the area wage, or from the assumed national wage as a last resort.
func (rc *runCtx) householdIncome(res *Result) float64 {
	if rc.facts.MedianHouseholdIncome > 0 {
		return rc.facts.MedianHouseholdIncome
	}
	wage := rc.facts.AreaMedianWage
	if wage <= 0 {
		wage = rc.defaults.NationalAvgWage
		res.assume("nationalAvgHourlyWage", wage)
	}
	return wage * hoursPerWorkYear
}
