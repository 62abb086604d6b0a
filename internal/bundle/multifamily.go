package bundle

import (
	"github.com/sells-group/deal-analyzer/internal/adapt"
	"github.com/sells-group/deal-analyzer/internal/assetscore"
)

func registerMultifamily(r *Registry) {
	r.Register(Package{
		ID:          "mf-revenue-performance",
		Description: "revenue scoring from loss-to-lease, occupancy, and turnover",
		run:         mfRevenuePerformance,
	})
	r.Register(Package{
		ID:          "mf-unit-mix",
		Description: "unit mix by type with concentration flag",
		run:         mfUnitMix,
	})
	r.Register(Package{
		ID:          "mf-loss-to-lease",
		Description: "mark-to-market rent gap and annual upside",
		run:         mfLossToLease,
	})
	r.Register(Package{
		ID:          "mf-turnover-cost",
		Description: "annual turnover economics including vacancy drag",
		run:         mfTurnoverCost,
	})
	r.Register(Package{
		ID:          "mf-expense-ratio",
		Description: "operating expense ratio against multifamily norms",
		run:         mfExpenseRatio,
	})
	r.Register(Package{
		ID:          "mf-renovation-upside",
		Description: "value-add program cost and payback",
		run:         mfRenovationUpside,
	})
	r.Register(Package{
		ID:          "mf-concessions",
		Description: "concession burden on gross income",
		run:         mfConcessions,
	})
	r.Register(Package{
		ID:          "mf-affordability",
		Description: "rent-to-income ratio against area incomes",
		run:         mfAffordability,
	})
}

// avgRentFromFacts returns the stated average in-place rent, falling back to
// a count-weighted average of the unit mix.
func avgRentFromFacts(rc *runCtx) float64 {
	if rc.facts.AvgInPlaceRent > 0 {
		return rc.facts.AvgInPlaceRent
	}
	units := rc.units()
	var count int
	var sum float64
	for i := range units {
		count += units[i].Count
		sum += units[i].CurrentRent * float64(units[i].Count)
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func totalUnitCount(rc *runCtx) int {
	if rc.facts.NumberOfUnits > 0 {
		return rc.facts.NumberOfUnits
	}
	var count int
	for _, u := range rc.units() {
		count += u.Count
	}
	return count
}

func mfRevenuePerformance(rc *runCtx) *Result {
	f := rc.facts
	units := rc.units()
	if len(units) == 0 && (f.AvgInPlaceRent <= 0 || f.AvgMarketRent <= 0) {
		return nil
	}
	if len(units) == 0 {
		// Collapse the stated averages into a single synthetic unit type.
		units = []adapt.CanonicalUnit{{
			UnitType:    "all",
			Count:       totalUnitCount(rc),
			CurrentRent: f.AvgInPlaceRent,
			MarketRent:  f.AvgMarketRent,
		}}
		if units[0].Count == 0 {
			units[0].Count = 1
		}
	}
	res := rc.result()
	res.put("revenue", assetscore.RevenuePerformance(units, assetscore.RevenueInputs{
		OccupancyPct:       f.OccupancyRate,
		OtherIncomePerUnit: f.OtherIncomePerUnit,
		AnnualTurnoverPct:  f.AnnualTurnoverRate,
		ConcessionsPct:     f.ConcessionsPct,
	}))
	return res
}

func mfUnitMix(rc *runCtx) *Result {
	units := rc.units()
	if len(units) == 0 {
		return nil
	}
	res := rc.result()
	res.put("unitMix", assetscore.UnitMix(units))
	return res
}

func mfLossToLease(rc *runCtx) *Result {
	f := rc.facts
	inPlace, market := f.AvgInPlaceRent, f.AvgMarketRent
	if inPlace <= 0 || market <= 0 {
		units := rc.units()
		var count int
		var ipSum, mktSum float64
		for i := range units {
			count += units[i].Count
			ipSum += units[i].CurrentRent * float64(units[i].Count)
			mktSum += units[i].MarketRent * float64(units[i].Count)
		}
		if count > 0 {
			inPlace = ipSum / float64(count)
			market = mktSum / float64(count)
		}
	}
	if inPlace <= 0 || market <= 0 {
		return nil
	}

	res := rc.result()
	ltl := (market - inPlace) / market * 100
	res.put("avgInPlaceRent", round2(inPlace))
	res.put("avgMarketRent", round2(market))
	res.put("lossToLeasePct", round2(ltl))
	if n := totalUnitCount(rc); n > 0 {
		res.put("annualUpside", round2(float64(n)*(market-inPlace)*12))
	}
	return res
}

func mfTurnoverCost(rc *runCtx) *Result {
	f := rc.facts
	n := totalUnitCount(rc)
	if n <= 0 || f.AnnualTurnoverRate <= 0 || f.TurnoverCostPerUnit <= 0 {
		return nil
	}
	res := rc.result()
	res.put("turnover", assetscore.Turnover(
		n, f.AnnualTurnoverRate, f.TurnoverCostPerUnit, avgRentFromFacts(rc), f.AvgDaysToLease))
	return res
}

func mfExpenseRatio(rc *runCtx) *Result {
	f := rc.facts
	income := f.EffectiveGrossIncome
	if income <= 0 {
		income = f.GrossIncome
	}
	if f.OperatingExpenses <= 0 || income <= 0 {
		return nil
	}
	res := rc.result()
	ratio := f.OperatingExpenses / income * 100
	res.put("expenseRatioPct", round2(ratio))
	switch {
	case ratio < 40:
		res.put("classification", "efficient")
	case ratio < 50:
		res.put("classification", "typical")
	default:
		res.put("classification", "heavy")
	}
	if n := totalUnitCount(rc); n > 0 {
		res.put("expensePerUnit", round2(f.OperatingExpenses/float64(n)))
	}
	return res
}

func mfRenovationUpside(rc *runCtx) *Result {
	f := rc.facts
	if f.RenovationCostPerUnit <= 0 || f.RenovationRentPremium <= 0 {
		return nil
	}
	units := rc.units()
	if len(units) == 0 {
		n := totalUnitCount(rc)
		if n <= 0 {
			return nil
		}
		remaining := n - f.RenovatedUnits
		if remaining < 0 {
			remaining = 0
		}
		units = []adapt.CanonicalUnit{{UnitType: "all", Count: remaining}}
	}
	res := rc.result()
	res.put("renovation", assetscore.Renovation(units, f.RenovationCostPerUnit, f.RenovationRentPremium))
	return res
}

func mfConcessions(rc *runCtx) *Result {
	f := rc.facts
	if f.ConcessionsPct <= 0 {
		return nil
	}
	res := rc.result()
	res.put("concessionsPct", f.ConcessionsPct)
	res.put("elevated", f.ConcessionsPct > 4)
	income := f.GrossIncome
	if income <= 0 {
		income = f.EffectiveGrossIncome
	}
	if income > 0 {
		res.put("annualDrag", round2(income*f.ConcessionsPct/100))
	}
	return res
}

func mfAffordability(rc *runCtx) *Result {
	rent := avgRentFromFacts(rc)
	if rent <= 0 {
		return nil
	}
	res := rc.result()
	income := rc.householdIncome(res)
	res.put("affordability", assetscore.AffordabilityCheck(rent, income))
	res.put("avgMonthlyRent", round2(rent))
	res.put("householdIncome", round2(income))
	return res
}
