package assetscore

import (
	"time"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// WALT returns the weighted average lease term in years: months remaining to
// each tenant's expiration, weighted by the tenant's share of total annual
// rent. Expired leases contribute zero months. Zero when there is no rent to
// weight by.
func WALT(tenants []adapt.CanonicalTenant, now time.Time) float64 {
	var totalRent, weighted float64
	for i := range tenants {
		totalRent += tenants[i].AnnualRent
	}
	if totalRent <= 0 {
		return 0
	}
	for i := range tenants {
		t := &tenants[i]
		weighted += t.AnnualRent / totalRent * t.MonthsRemaining(now)
	}
	return round2(weighted / 12)
}

// EnhancedWALT weights by rentable area instead of rent and multiplies each
// tenant's weight by its credit factor (AAA 1.2, AA 1.1, A 1.0, else 0.9),
// so investment-grade term counts for more than speculative term.
func EnhancedWALT(tenants []adapt.CanonicalTenant, now time.Time) float64 {
	var totalWeight, weighted float64
	for i := range tenants {
		t := &tenants[i]
		w := t.SquareFootage * creditWeight(t.CreditRating)
		totalWeight += w
		weighted += w * t.MonthsRemaining(now)
	}
	if totalWeight <= 0 {
		return 0
	}
	return round2(weighted / totalWeight / 12)
}

// ExpirationBucket summarizes lease rollover within a single year window.
type ExpirationBucket struct {
	Label      string  `json:"label"`
	TenantCount int    `json:"tenantCount"`
	SquareFeet float64 `json:"squareFeet"`
	AnnualRent float64 `json:"annualRent"`
	PctOfRent  float64 `json:"pctOfRent"`
}

// RolloverSchedule buckets tenants by years-to-expiration: within 1 year,
// 1-3, 3-5, and beyond 5. Expired leases land in the first bucket.
func RolloverSchedule(tenants []adapt.CanonicalTenant, now time.Time) []ExpirationBucket {
	buckets := []ExpirationBucket{
		{Label: "0-12 months"},
		{Label: "1-3 years"},
		{Label: "3-5 years"},
		{Label: "5+ years"},
	}

	var totalRent float64
	for i := range tenants {
		totalRent += tenants[i].AnnualRent
	}

	for i := range tenants {
		t := &tenants[i]
		years := t.MonthsRemaining(now) / 12
		var idx int
		switch {
		case years <= 1:
			idx = 0
		case years <= 3:
			idx = 1
		case years <= 5:
			idx = 2
		default:
			idx = 3
		}
		buckets[idx].TenantCount++
		buckets[idx].SquareFeet += t.SquareFootage
		buckets[idx].AnnualRent += t.AnnualRent
	}

	if totalRent > 0 {
		for i := range buckets {
			buckets[i].PctOfRent = round2(buckets[i].AnnualRent / totalRent * 100)
		}
	}
	return buckets
}
