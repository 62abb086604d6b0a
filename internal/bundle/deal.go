package bundle

import (
	"github.com/sells-group/deal-analyzer/internal/assetscore"
	"github.com/sells-group/deal-analyzer/internal/finance"
)

func registerDeal(r *Registry) {
	r.Register(Package{
		ID:          "deal-snapshot",
		Description: "headline pricing metrics for the deal",
		run:         dealSnapshot,
	})
	r.Register(Package{
		ID:          "debt-profile",
		Description: "debt service, coverage, and leverage",
		run:         debtProfile,
	})
	r.Register(Package{
		ID:          "cashflow-profile",
		Description: "cash yield and income durability",
		run:         cashflowProfile,
	})
	r.Register(Package{
		ID:          "walt-enhanced",
		Description: "credit-weighted lease term versus the plain WALT",
		run:         waltEnhanced,
	})
	r.Register(Package{
		ID:          "breakeven-stress",
		Description: "occupancy cushion over the breakeven point",
		run:         breakevenStress,
	})
}

func dealSnapshot(rc *runCtx) *Result {
	f := rc.facts
	if f.PurchasePrice <= 0 {
		return nil
	}
	res := rc.result()
	res.put("purchasePrice", f.PurchasePrice)

	if v, err := finance.CapRate(f.CurrentNOI, f.PurchasePrice); err == nil {
		res.put("capRatePct", round2(v))
	}
	if v, err := finance.PricePerSF(f.PurchasePrice, f.LeasableSF()); err == nil {
		res.put("pricePerSF", round2(v))
	}
	if v, err := finance.PricePerUnit(f.PurchasePrice, f.NumberOfUnits); err == nil {
		res.put("pricePerUnit", round2(v))
	}
	if v, err := finance.GRM(f.PurchasePrice, f.GrossIncome); err == nil {
		res.put("grossRentMultiplier", round2(v))
	}
	return res
}

func debtProfile(rc *runCtx) *Result {
	f := rc.facts
	if f.LoanAmount <= 0 || f.InterestRate <= 0 || f.LoanTermYears <= 0 {
		return nil
	}
	res := rc.result()
	ads := finance.AnnualDebtService(f.LoanAmount, f.InterestRate, f.LoanTermYears)
	res.put("annualDebtService", round2(ads))
	res.put("loanAmount", f.LoanAmount)
	res.put("interestRatePct", f.InterestRate)

	if v, err := finance.DSCR(f.CurrentNOI, f.LoanAmount, f.InterestRate, f.LoanTermYears); err == nil {
		res.put("dscr", round2(v))
	}
	if v, err := finance.LTV(f.LoanAmount, f.PurchasePrice); err == nil {
		res.put("ltvPct", round2(v))
	}
	if f.CurrentNOI > 0 {
		res.put("debtYieldPct", round2(f.CurrentNOI/f.LoanAmount*100))
	}
	return res
}

func cashflowProfile(rc *runCtx) *Result {
	f := rc.facts
	if f.AnnualCashFlow == 0 && f.CurrentNOI <= 0 {
		return nil
	}
	res := rc.result()
	res.put("annualCashFlow", f.AnnualCashFlow)

	if v, err := finance.CashOnCash(f.AnnualCashFlow, f.TotalCashInvested); err == nil {
		res.put("cashOnCashPct", round2(v))
	}
	if v, err := finance.EffectiveGrossIncome(f.GrossIncome, f.OccupancyRate); err == nil {
		res.put("effectiveGrossIncome", round2(v))
	}
	if f.CurrentNOI > 0 && f.ProjectedNOI > 0 {
		res.put("noiGrowthPct", round2((f.ProjectedNOI-f.CurrentNOI)/f.CurrentNOI*100))
	}
	return res
}

func waltEnhanced(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	plain := assetscore.WALT(tenants, rc.now)
	enhanced := assetscore.EnhancedWALT(tenants, rc.now)
	res.put("waltYears", plain)
	res.put("enhancedWALTYears", enhanced)
	res.put("creditAdjustmentYears", round2(enhanced-plain))
	return res
}

func breakevenStress(rc *runCtx) *Result {
	f := rc.facts
	breakeven, err := finance.BreakevenOccupancy(
		f.OperatingExpenses, f.GrossIncome, f.LoanAmount, f.InterestRate, f.LoanTermYears)
	if err != nil {
		return nil
	}
	res := rc.result()
	res.put("breakevenOccupancyPct", round2(breakeven))
	if f.OccupancyRate > 0 {
		cushion := f.OccupancyRate - breakeven
		res.put("occupancyCushionPts", round2(cushion))
		res.put("stressed", cushion < 5)
	}
	return res
}
