package assetscore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// expiringIn builds a tenant whose lease runs the given number of months
// from the fixed test clock.
func expiringIn(months int, annualRent, sf float64) adapt.CanonicalTenant {
	return adapt.CanonicalTenant{
		Name:          "T",
		AnnualRent:    annualRent,
		SquareFootage: sf,
		LeaseExpiry:   fixedNow.AddDate(0, months, 0),
	}
}

func TestWALT(t *testing.T) {
	t.Run("two tenant weighted average", func(t *testing.T) {
		// A: $600k rent, 24 months; B: $400k rent, 48 months.
		// WALT = (0.6*24 + 0.4*48)/12 = 2.8 years.
		tenants := []adapt.CanonicalTenant{
			expiringIn(24, 600_000, 0),
			expiringIn(48, 400_000, 0),
		}
		assert.InDelta(t, 2.8, WALT(tenants, fixedNow), 0.05)
	})

	t.Run("expired lease contributes zero term", func(t *testing.T) {
		tenants := []adapt.CanonicalTenant{
			expiringIn(-6, 500_000, 0),
			expiringIn(24, 500_000, 0),
		}
		assert.InDelta(t, 1.0, WALT(tenants, fixedNow), 0.05)
	})

	t.Run("no rent to weight by", func(t *testing.T) {
		assert.Zero(t, WALT(nil, fixedNow))
		assert.Zero(t, WALT([]adapt.CanonicalTenant{expiringIn(24, 0, 0)}, fixedNow))
	})
}

func TestEnhancedWALT(t *testing.T) {
	t.Run("credit weighting favors investment grade term", func(t *testing.T) {
		// Same SF: an AAA tenant's months count 1.2/0.9 more than unrated.
		long := expiringIn(60, 0, 10_000)
		long.CreditRating = "AAA"
		short := expiringIn(12, 0, 10_000)
		short.CreditRating = "NR"

		got := EnhancedWALT([]adapt.CanonicalTenant{long, short}, fixedNow)
		// Weights 12000 vs 9000: (12000*60 + 9000*12)/21000/12 = 3.29y.
		assert.InDelta(t, 3.29, got, 0.05)
	})

	t.Run("zero area yields zero", func(t *testing.T) {
		assert.Zero(t, EnhancedWALT([]adapt.CanonicalTenant{expiringIn(24, 100, 0)}, fixedNow))
	})
}

func TestRolloverSchedule(t *testing.T) {
	tenants := []adapt.CanonicalTenant{
		expiringIn(6, 100_000, 5_000),
		expiringIn(30, 200_000, 10_000),
		expiringIn(50, 300_000, 15_000),
		expiringIn(90, 400_000, 20_000),
	}
	buckets := RolloverSchedule(tenants, fixedNow)

	assert.Len(t, buckets, 4)
	assert.Equal(t, 1, buckets[0].TenantCount)
	assert.Equal(t, 1, buckets[1].TenantCount)
	assert.Equal(t, 1, buckets[2].TenantCount)
	assert.Equal(t, 1, buckets[3].TenantCount)
	assert.InDelta(t, 10.0, buckets[0].PctOfRent, 0.01)
	assert.InDelta(t, 40.0, buckets[3].PctOfRent, 0.01)
}
