package bundle

import (
	"github.com/sells-group/deal-analyzer/internal/assetscore"
)

func registerOffice(r *Registry) {
	r.Register(Package{
		ID:          "office-tenant-credit",
		Description: "SF-weighted tenant credit scoring across the rent roll",
		run:         officeTenantCredit,
	})
	r.Register(Package{
		ID:          "office-walt",
		Description: "weighted average lease term",
		run:         officeWALT,
	})
	r.Register(Package{
		ID:          "office-lease-rollover",
		Description: "lease expiration schedule by year bucket",
		run:         officeLeaseRollover,
	})
	r.Register(Package{
		ID:          "office-vacancy-posture",
		Description: "vacancy versus submarket, including sublease shadow space",
		run:         officeVacancyPosture,
	})
	r.Register(Package{
		ID:          "office-building-grade",
		Description: "building class from stated grade, vintage, and renovation",
		run:         officeBuildingGrade,
	})
	r.Register(Package{
		ID:          "office-expense-benchmark",
		Description: "operating expense PSF against the market benchmark",
		run:         officeExpenseBenchmark,
	})
	r.Register(Package{
		ID:          "office-parking-adequacy",
		Description: "parking ratio per 1,000 SF against office norms",
		run:         officeParkingAdequacy,
	})
	r.Register(Package{
		ID:          "office-sublease-risk",
		Description: "sublease shadow space as a share of the building",
		run:         officeSubleaseRisk,
	})
}

func officeTenantCredit(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("tenantCredit", assetscore.TenantCredit(tenants, rc.now))
	return res
}

func officeWALT(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("waltYears", assetscore.WALT(tenants, rc.now))
	return res
}

func officeLeaseRollover(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("rollover", assetscore.RolloverSchedule(tenants, rc.now))
	return res
}

func officeVacancyPosture(rc *runCtx) *Result {
	f := rc.facts
	totalSF := f.LeasableSF()
	if totalSF <= 0 || f.VacantSF <= 0 {
		return nil
	}
	res := rc.result()
	submarket := rc.submarketVacancy(res)
	res.put("vacancy", assetscore.Vacancy(f.VacantSF, f.SubleaseSF, totalSF, submarket))
	return res
}

func officeBuildingGrade(rc *runCtx) *Result {
	f := rc.facts
	if f.OfficeClass == "" && f.YearBuilt == 0 {
		return nil
	}
	res := rc.result()

	grade := f.OfficeClass
	if grade == "" {
		// Derive from vintage: post-2010 construction grades A, pre-1990
		// stock grades C unless renovated since 2010.
		switch {
		case f.YearBuilt >= 2010:
			grade = "A"
		case f.YearBuilt >= 1990 || f.YearRenovated >= 2010:
			grade = "B"
		default:
			grade = "C"
		}
		res.put("gradeDerived", true)
	}
	res.put("grade", grade)
	if f.YearBuilt > 0 {
		res.put("buildingAgeYears", rc.now.Year()-f.YearBuilt)
	}
	if f.YearRenovated > 0 {
		res.put("yearRenovated", f.YearRenovated)
	}
	if f.FloorPlateSF > 0 {
		res.put("floorPlateSF", f.FloorPlateSF)
	}
	return res
}

func officeExpenseBenchmark(rc *runCtx) *Result {
	f := rc.facts
	expensePSF := f.OperatingExpensePSF
	if expensePSF <= 0 && f.OperatingExpenses > 0 && f.LeasableSF() > 0 {
		expensePSF = f.OperatingExpenses / f.LeasableSF()
	}
	if expensePSF <= 0 || f.MarketExpensePSF <= 0 {
		return nil
	}
	res := rc.result()
	res.put("expenses", assetscore.Expenses(expensePSF, f.MarketExpensePSF))
	return res
}

func officeParkingAdequacy(rc *runCtx) *Result {
	f := rc.facts
	if f.ParkingSpaces <= 0 || f.LeasableSF() <= 0 {
		return nil
	}
	res := rc.result()
	res.put("parking", assetscore.Parking(f.ParkingSpaces, f.LeasableSF()))
	return res
}

func officeSubleaseRisk(rc *runCtx) *Result {
	f := rc.facts
	totalSF := f.LeasableSF()
	if totalSF <= 0 || f.SubleaseSF <= 0 {
		return nil
	}
	res := rc.result()
	shadowPct := round2(f.SubleaseSF / totalSF * 100)
	res.put("subleaseSF", f.SubleaseSF)
	res.put("shadowPct", shadowPct)
	switch {
	case shadowPct >= 10:
		res.put("posture", "high")
	case shadowPct >= 5:
		res.put("posture", "elevated")
	default:
		res.put("posture", "limited")
	}
	return res
}
