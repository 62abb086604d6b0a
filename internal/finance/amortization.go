package finance

import "math"

// AnnualDebtService returns the annual debt service for a fully amortizing
// fixed-rate loan: twelve times the standard monthly payment.
//
// Unlike the strict calculators, this helper is forgiving: any zero or
// negative input yields 0 rather than an error, so callers composing larger
// formulas (breakeven, DSCR gating) can treat "no loan" as zero debt.
func AnnualDebtService(principal, annualRatePct, termYears float64) float64 {
	if principal <= 0 || annualRatePct <= 0 || termYears <= 0 {
		return 0
	}
	return 12 * monthlyPayment(principal, annualRatePct, termYears)
}

// monthlyPayment computes the standard amortizing payment
// P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate and n the term in
// months. A zero rate amortizes linearly.
func monthlyPayment(principal, annualRatePct, termYears float64) float64 {
	n := termYears * 12
	r := annualRatePct / 12 / 100
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}
