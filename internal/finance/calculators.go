// Package finance implements the fixed set of investment metric formulas.
//
// These are the "strict mode" calculators: called directly with a degenerate
// denominator they return an invalid-argument error. The engine's batch path
// gates them behind the validate package and converts any residual error into
// a validationErrors entry instead of propagating it.
package finance

import (
	"math"

	"github.com/rotisserie/eris"
)

const (
	// defaultExitCapRate backstops the IRR appreciation estimate when the
	// facts carry no exit cap rate.
	defaultExitCapRate = 0.08

	// defaultHoldYears annualizes ROI when no holding period is supplied.
	defaultHoldYears = 5

	// returnClampPct bounds the IRR/ROI approximations. The approximations
	// can explode on small invested bases; the clamp is deliberate policy.
	returnClampPct = 50
)

// CapRate returns NOI / price * 100.
func CapRate(noi, price float64) (float64, error) {
	if price <= 0 {
		return 0, eris.Errorf("finance: cap rate requires purchase price > 0, got %.2f", price)
	}
	return noi / price * 100, nil
}

// CashOnCash returns annual cash flow / total cash invested * 100.
func CashOnCash(annualCashFlow, totalCashInvested float64) (float64, error) {
	if totalCashInvested <= 0 {
		return 0, eris.Errorf("finance: cash-on-cash requires cash invested > 0, got %.2f", totalCashInvested)
	}
	return annualCashFlow / totalCashInvested * 100, nil
}

// DSCR returns NOI over annual debt service for a fully amortizing loan.
func DSCR(noi, loanAmount, annualRatePct, termYears float64) (float64, error) {
	if loanAmount <= 0 {
		return 0, eris.Errorf("finance: dscr requires loan amount > 0, got %.2f", loanAmount)
	}
	if annualRatePct <= 0 || annualRatePct > 100 {
		return 0, eris.Errorf("finance: dscr requires interest rate in (0,100], got %.2f", annualRatePct)
	}
	if termYears <= 0 {
		return 0, eris.Errorf("finance: dscr requires loan term > 0, got %.2f", termYears)
	}
	ads := AnnualDebtService(loanAmount, annualRatePct, termYears)
	return noi / ads, nil
}

// LTV returns loan amount / price * 100.
func LTV(loanAmount, price float64) (float64, error) {
	if price <= 0 {
		return 0, eris.Errorf("finance: ltv requires purchase price > 0, got %.2f", price)
	}
	return loanAmount / price * 100, nil
}

// GRM returns price / gross annual income.
func GRM(price, grossAnnualIncome float64) (float64, error) {
	if grossAnnualIncome <= 0 {
		return 0, eris.Errorf("finance: grm requires gross income > 0, got %.2f", grossAnnualIncome)
	}
	return price / grossAnnualIncome, nil
}

// PricePerSF returns price / square footage.
func PricePerSF(price, squareFootage float64) (float64, error) {
	if squareFootage <= 0 {
		return 0, eris.Errorf("finance: price/SF requires square footage > 0, got %.2f", squareFootage)
	}
	return price / squareFootage, nil
}

// PricePerUnit returns price / unit count.
func PricePerUnit(price float64, units int) (float64, error) {
	if units <= 0 {
		return 0, eris.Errorf("finance: price/unit requires unit count > 0, got %d", units)
	}
	return price / float64(units), nil
}

// EffectiveGrossIncome returns gross income scaled by occupancy percentage.
func EffectiveGrossIncome(grossIncome, occupancyPct float64) (float64, error) {
	if occupancyPct < 0 || occupancyPct > 100 {
		return 0, eris.Errorf("finance: egi requires occupancy in [0,100], got %.2f", occupancyPct)
	}
	return grossIncome * occupancyPct / 100, nil
}

// BreakevenOccupancy returns (operating expenses + annual debt service) /
// gross income * 100. Debt service inputs pass through AnnualDebtService, so
// an unlevered property breaks even on expenses alone.
func BreakevenOccupancy(operatingExpenses, grossIncome, loanAmount, annualRatePct, termYears float64) (float64, error) {
	if grossIncome <= 0 {
		return 0, eris.Errorf("finance: breakeven requires gross income > 0, got %.2f", grossIncome)
	}
	ads := AnnualDebtService(loanAmount, annualRatePct, termYears)
	return (operatingExpenses + ads) / grossIncome * 100, nil
}

// ApproxIRR estimates IRR without root finding.
//
// Appreciation is estimated by capitalizing NOI growth at the exit cap rate
// (facts-supplied, else 8%); when the NOI delta is non-positive the fallback
// is 10x the delta. Total return is cumulative cash flow over the hold plus
// appreciation, and the result is the annualized growth rate of invested
// capital, clamped to [0,50]%. The clamp and fallbacks are deliberate policy.
func ApproxIRR(currentNOI, projectedNOI, annualCashFlow, totalCashInvested, holdYears, exitCapRatePct float64) (float64, error) {
	if totalCashInvested <= 0 {
		return 0, eris.Errorf("finance: irr requires cash invested > 0, got %.2f", totalCashInvested)
	}
	if holdYears <= 0 {
		return 0, eris.Errorf("finance: irr requires holding period > 0, got %.2f", holdYears)
	}

	appreciation := estimateAppreciation(currentNOI, projectedNOI, exitCapRatePct)
	totalReturn := annualCashFlow*holdYears + appreciation

	terminal := totalReturn + totalCashInvested
	if terminal <= 0 {
		return 0, nil
	}
	irr := (math.Pow(terminal/totalCashInvested, 1/holdYears) - 1) * 100
	return clampReturn(irr), nil
}

// ApproxROI estimates annualized ROI using the same total-return estimate as
// ApproxIRR, spread over the holding period (5 years when unset). Without a
// projected NOI there is nothing to capitalize, so the fallback is the plain
// cash-flow ratio. Clamped to [0,50]%.
func ApproxROI(currentNOI, projectedNOI, annualCashFlow, totalCashInvested, holdYears, exitCapRatePct float64) (float64, error) {
	if totalCashInvested <= 0 {
		return 0, eris.Errorf("finance: roi requires cash invested > 0, got %.2f", totalCashInvested)
	}
	if holdYears <= 0 {
		holdYears = defaultHoldYears
	}

	if projectedNOI <= 0 {
		return clampReturn(annualCashFlow / totalCashInvested * 100), nil
	}

	appreciation := estimateAppreciation(currentNOI, projectedNOI, exitCapRatePct)
	totalReturn := annualCashFlow*holdYears + appreciation
	roi := totalReturn / totalCashInvested / holdYears * 100
	return clampReturn(roi), nil
}

// estimateAppreciation capitalizes the NOI delta at the exit cap rate. A
// non-positive delta falls back to 10x the delta rather than dividing, so
// declining NOI produces a proportionate, bounded drag.
func estimateAppreciation(currentNOI, projectedNOI, exitCapRatePct float64) float64 {
	delta := projectedNOI - currentNOI
	if delta <= 0 {
		return 10 * delta
	}
	cap := defaultExitCapRate
	if exitCapRatePct > 0 {
		cap = exitCapRatePct / 100
	}
	return delta / cap
}

func clampReturn(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > returnClampPct {
		return returnClampPct
	}
	return pct
}
