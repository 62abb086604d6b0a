package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnualDebtService(t *testing.T) {
	t.Run("reference loan", func(t *testing.T) {
		// $3.5M at 5.5% over 30 years.
		got := AnnualDebtService(3_500_000, 5.5, 30)
		assert.InDelta(t, 238_699.68, got, 1.0)
	})

	t.Run("zero inputs return zero, not an error", func(t *testing.T) {
		assert.Zero(t, AnnualDebtService(0, 5.5, 30))
		assert.Zero(t, AnnualDebtService(3_500_000, 0, 30))
		assert.Zero(t, AnnualDebtService(3_500_000, 5.5, 0))
		assert.Zero(t, AnnualDebtService(-1, 5.5, 30))
	})

	t.Run("shorter term costs more per year", func(t *testing.T) {
		long := AnnualDebtService(1_000_000, 6, 30)
		short := AnnualDebtService(1_000_000, 6, 15)
		assert.Greater(t, short, long)
	})

	t.Run("higher rate costs more", func(t *testing.T) {
		low := AnnualDebtService(1_000_000, 4, 30)
		high := AnnualDebtService(1_000_000, 8, 30)
		assert.Greater(t, high, low)
	})
}

func TestMonthlyPaymentZeroRate(t *testing.T) {
	// Linear amortization when the rate is zero.
	got := monthlyPayment(120_000, 0, 10)
	assert.InDelta(t, 1000.0, got, 0.001)
}
