package assetscore

import (
	"sort"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// RevenueInputs are the property-level figures the multifamily revenue
// engine reads alongside the unit mix. Zero values mean "not supplied".
type RevenueInputs struct {
	OccupancyPct       float64
	OtherIncomePerUnit float64 // monthly, per unit
	AnnualTurnoverPct  float64
	ConcessionsPct     float64
}

// RevenueResult is the multifamily revenue performance assessment.
type RevenueResult struct {
	Score           float64   `json:"score"`
	Risk            RiskLevel `json:"risk"`
	LossToLeasePct  float64   `json:"lossToLeasePct"`
	AvgInPlaceRent  float64   `json:"avgInPlaceRent"`
	AvgMarketRent   float64   `json:"avgMarketRent"`
	Drivers         []string  `json:"drivers,omitempty"`
}

// RevenuePerformance scores multifamily revenue from a base of 60 with fixed
// deltas: loss-to-lease above 10% +15 (mark-to-market upside), 5-10% +8,
// negative (over-market rents) -10; occupancy >= 95% +10, < 85% -15; other
// income >= $40/unit/month +5; turnover <= 40% +10, >= 60% -10; concessions
// above 4% of gross -10. Clamped to [0,100].
func RevenuePerformance(units []adapt.CanonicalUnit, in RevenueInputs) RevenueResult {
	res := RevenueResult{}
	score := 60.0
	var drivers []string

	inPlace, market := avgRents(units)
	res.AvgInPlaceRent = round2(inPlace)
	res.AvgMarketRent = round2(market)

	if market > 0 {
		ltl := (market - inPlace) / market * 100
		res.LossToLeasePct = round2(ltl)
		switch {
		case ltl > 10:
			score += 15
			drivers = append(drivers, "loss-to-lease above 10%: mark-to-market upside")
		case ltl >= 5:
			score += 8
			drivers = append(drivers, "moderate loss-to-lease upside")
		case ltl < 0:
			score -= 10
			drivers = append(drivers, "in-place rents above market")
		}
	}

	if in.OccupancyPct > 0 {
		switch {
		case in.OccupancyPct >= 95:
			score += 10
			drivers = append(drivers, "occupancy at or above 95%")
		case in.OccupancyPct < 85:
			score -= 15
			drivers = append(drivers, "occupancy below 85%")
		}
	}

	if in.OtherIncomePerUnit >= 40 {
		score += 5
		drivers = append(drivers, "other income above $40/unit/month")
	}

	if in.AnnualTurnoverPct > 0 {
		switch {
		case in.AnnualTurnoverPct <= 40:
			score += 10
			drivers = append(drivers, "turnover at or below 40%")
		case in.AnnualTurnoverPct >= 60:
			score -= 10
			drivers = append(drivers, "turnover at or above 60%")
		}
	}

	if in.ConcessionsPct > 4 {
		score -= 10
		drivers = append(drivers, "concessions above 4% of gross")
	}

	score = clamp100(score)
	res.Score = round2(score)
	res.Risk = riskFromScore(score)
	res.Drivers = drivers
	return res
}

func avgRents(units []adapt.CanonicalUnit) (inPlace, market float64) {
	var count int
	for i := range units {
		u := &units[i]
		count += u.Count
		inPlace += u.CurrentRent * float64(u.Count)
		market += u.MarketRent * float64(u.Count)
	}
	if count == 0 {
		return 0, 0
	}
	return inPlace / float64(count), market / float64(count)
}

// UnitMixEntry summarizes one unit type within the mix.
type UnitMixEntry struct {
	UnitType       string  `json:"unitType"`
	Count          int     `json:"count"`
	PctOfUnits     float64 `json:"pctOfUnits"`
	AvgCurrentRent float64 `json:"avgCurrentRent"`
	AvgMarketRent  float64 `json:"avgMarketRent"`
	RentPSF        float64 `json:"rentPSF"`
}

// UnitMixResult is the unit mix breakdown with a concentration flag.
type UnitMixResult struct {
	TotalUnits    int            `json:"totalUnits"`
	Entries       []UnitMixEntry `json:"entries"`
	Concentrated  bool           `json:"concentrated"`
	DominantType  string         `json:"dominantType,omitempty"`
}

// UnitMix aggregates the unit mix by type. A mix is concentrated when one
// type holds more than 70% of units.
func UnitMix(units []adapt.CanonicalUnit) UnitMixResult {
	type agg struct {
		count           int
		rentSum, mktSum float64
		sfSum           float64
	}
	byType := map[string]*agg{}
	var order []string
	var total int

	for i := range units {
		u := &units[i]
		a, ok := byType[u.UnitType]
		if !ok {
			a = &agg{}
			byType[u.UnitType] = a
			order = append(order, u.UnitType)
		}
		a.count += u.Count
		a.rentSum += u.CurrentRent * float64(u.Count)
		a.mktSum += u.MarketRent * float64(u.Count)
		a.sfSum += u.SquareFootage * float64(u.Count)
		total += u.Count
	}

	res := UnitMixResult{TotalUnits: total}
	sort.Strings(order)
	for _, ut := range order {
		a := byType[ut]
		e := UnitMixEntry{UnitType: ut, Count: a.count}
		if total > 0 {
			e.PctOfUnits = round2(float64(a.count) / float64(total) * 100)
		}
		if a.count > 0 {
			e.AvgCurrentRent = round2(a.rentSum / float64(a.count))
			e.AvgMarketRent = round2(a.mktSum / float64(a.count))
		}
		if a.sfSum > 0 {
			e.RentPSF = round2(a.rentSum * 12 / a.sfSum)
		}
		if e.PctOfUnits > 70 {
			res.Concentrated = true
			res.DominantType = ut
		}
		res.Entries = append(res.Entries, e)
	}
	return res
}

// RenovationUpside sizes the value-add program: remaining units, cost, and
// simple payback on the rent premium.
type RenovationUpside struct {
	UnrenovatedUnits int     `json:"unrenovatedUnits"`
	ProgramCost      float64 `json:"programCost"`
	AnnualPremium    float64 `json:"annualPremium"`
	PaybackYears     float64 `json:"paybackYears"`
}

// Renovation computes the renovation program economics from unit counts, the
// per-unit cost, and the expected monthly rent premium.
func Renovation(units []adapt.CanonicalUnit, costPerUnit, monthlyPremium float64) RenovationUpside {
	var remaining int
	for i := range units {
		if !units[i].Renovated {
			remaining += units[i].Count
		}
	}
	r := RenovationUpside{
		UnrenovatedUnits: remaining,
		ProgramCost:      round2(float64(remaining) * costPerUnit),
		AnnualPremium:    round2(float64(remaining) * monthlyPremium * 12),
	}
	if r.AnnualPremium > 0 {
		r.PaybackYears = round2(r.ProgramCost / r.AnnualPremium)
	}
	return r
}

// TurnoverCost is the annual economic drag from unit turnover.
type TurnoverCost struct {
	TurnsPerYear  float64 `json:"turnsPerYear"`
	AnnualCost    float64 `json:"annualCost"`
	CostPerUnit   float64 `json:"costPerUnit"`
	VacancyDrag   float64 `json:"vacancyDrag"`
}

// Turnover computes turnover economics: turns from the annual rate, direct
// make-ready cost, and rent lost while units sit vacant between leases.
func Turnover(totalUnits int, turnoverPct, costPerTurn, avgRent, avgDaysVacant float64) TurnoverCost {
	turns := float64(totalUnits) * turnoverPct / 100
	t := TurnoverCost{
		TurnsPerYear: round2(turns),
		AnnualCost:   round2(turns * costPerTurn),
		CostPerUnit:  round2(costPerTurn),
	}
	if avgRent > 0 && avgDaysVacant > 0 {
		t.VacancyDrag = round2(turns * avgRent / 30.44 * avgDaysVacant)
	}
	return t
}

// Affordability reports the rent-to-income ratio against the area median
// household income; above 30% is rent-burdened territory.
type Affordability struct {
	RentToIncomePct float64 `json:"rentToIncomePct"`
	Classification  string  `json:"classification"`
}

// AffordabilityCheck classifies average rent against median household
// income: under 25% "affordable", under 30% "moderate", else "burdened".
func AffordabilityCheck(avgMonthlyRent, medianHouseholdIncome float64) Affordability {
	var a Affordability
	if medianHouseholdIncome > 0 {
		a.RentToIncomePct = round2(avgMonthlyRent * 12 / medianHouseholdIncome * 100)
	}
	switch {
	case a.RentToIncomePct == 0:
		a.Classification = "unknown"
	case a.RentToIncomePct < 25:
		a.Classification = "affordable"
	case a.RentToIncomePct < 30:
		a.Classification = "moderate"
	default:
		a.Classification = "burdened"
	}
	return a
}
