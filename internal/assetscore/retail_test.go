package assetscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

func TestCoTenancyAbsentCoTenant(t *testing.T) {
	// $50/SF on 10,000 SF with an absent required co-tenant: 80% of the SF
	// (8,000) and 80% of the $500k rent ($400k) is exposed.
	tenants := []adapt.CanonicalTenant{
		{
			Name:               "Inline Apparel",
			SquareFootage:      10_000,
			RentPSF:            50,
			AnnualRent:         500_000,
			HasCoTenancyClause: true,
			RequiredCoTenant:   "SuperAnchor",
			LeaseExpiry:        fixedNow.AddDate(5, 0, 0),
		},
	}

	res := CoTenancy(tenants, fixedNow)
	require.Len(t, res.AtRisk, 1)
	assert.InDelta(t, 8_000.0, res.AtRisk[0].ExposedSF, 0.01)
	assert.InDelta(t, 400_000.0, res.AtRisk[0].ExposedRent, 0.01)
	assert.Equal(t, "required co-tenant absent", res.AtRisk[0].Reason)
	// 8,000 of 10,000 SF exposed -> Critical.
	assert.Equal(t, "Critical", res.RiskLevel)
}

func TestCoTenancyRollingCoTenant(t *testing.T) {
	anchor := adapt.CanonicalTenant{
		Name:          "SuperAnchor",
		SquareFootage: 80_000,
		AnnualRent:    1_200_000,
		LeaseExpiry:   fixedNow.AddDate(0, 12, 0), // rolls in 12 months
	}
	inline := adapt.CanonicalTenant{
		Name:               "Inline Apparel",
		SquareFootage:      10_000,
		AnnualRent:         500_000,
		HasCoTenancyClause: true,
		RequiredCoTenant:   "SuperAnchor",
		LeaseExpiry:        fixedNow.AddDate(5, 0, 0),
	}

	res := CoTenancy([]adapt.CanonicalTenant{anchor, inline}, fixedNow)
	require.Len(t, res.AtRisk, 1)
	// 12 of 24 months remaining: exposure = 0.5 - 0.2*(12/24) = 0.4.
	assert.InDelta(t, 0.4, res.AtRisk[0].ExposureFraction, 0.01)
	assert.InDelta(t, 4_000.0, res.AtRisk[0].ExposedSF, 30)
	assert.InDelta(t, 200_000.0, res.AtRisk[0].ExposedRent, 1_500)
}

func TestCoTenancyNoExposureWhenCoTenantSecure(t *testing.T) {
	anchor := adapt.CanonicalTenant{
		Name:        "SuperAnchor",
		LeaseExpiry: fixedNow.AddDate(10, 0, 0),
	}
	inline := adapt.CanonicalTenant{
		Name:               "Inline",
		SquareFootage:      10_000,
		AnnualRent:         500_000,
		HasCoTenancyClause: true,
		RequiredCoTenant:   "SuperAnchor",
		LeaseExpiry:        fixedNow.AddDate(5, 0, 0),
	}

	res := CoTenancy([]adapt.CanonicalTenant{anchor, inline}, fixedNow)
	assert.Empty(t, res.AtRisk)
	assert.Equal(t, "Low", res.RiskLevel)
}

func TestCoTenancyRiskBands(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{3, "Low"},
		{8, "Medium"},
		{20, "High"},
		{30, "Critical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coTenancyRisk(tt.pct), "%.0f%%", tt.pct)
	}
}

func TestTenantHealth(t *testing.T) {
	t.Run("strong tenant", func(t *testing.T) {
		tenants := []adapt.CanonicalTenant{{
			Name:          "Grocer",
			SquareFootage: 40_000,
			AnnualRent:    800_000,
			AnnualSales:   18_000_000, // $450/SF, OCR 4.4%
			CreditRating:  "A",
			LeaseExpiry:   fixedNow.AddDate(0, 60, 0),
		}}
		res := TenantHealth(tenants, fixedNow)
		// 70 +15 sales +10 OCR +10 credit +5 term = 100 (clamped).
		assert.InDelta(t, 100.0, res.TenantScores[0].Score, 0.01)
		assert.Equal(t, RiskLow, res.Risk)
	})

	t.Run("struggling tenant", func(t *testing.T) {
		tenants := []adapt.CanonicalTenant{{
			Name:          "Fashion Outlet",
			SquareFootage: 10_000,
			AnnualRent:    450_000,
			AnnualSales:   1_800_000, // $180/SF, OCR 25%
			CreditRating:  "NR",
			LeaseExpiry:   fixedNow.AddDate(0, 6, 0),
		}}
		res := TenantHealth(tenants, fixedNow)
		// 70 -15 sales -20 OCR -5 NR -10 term = 20.
		assert.InDelta(t, 20.0, res.TenantScores[0].Score, 0.01)
		assert.Equal(t, RiskHigh, res.TenantScores[0].Risk)
	})

	t.Run("no sales data leaves bands untouched", func(t *testing.T) {
		tenants := []adapt.CanonicalTenant{{
			Name:         "Mystery",
			CreditRating: "BBB",
			LeaseExpiry:  fixedNow.AddDate(0, 24, 0),
		}}
		res := TenantHealth(tenants, fixedNow)
		assert.InDelta(t, 70.0, res.TenantScores[0].Score, 0.01)
	})
}

func TestAnchors(t *testing.T) {
	t.Run("anchored center", func(t *testing.T) {
		tenants := []adapt.CanonicalTenant{
			{Name: "MegaMart", IsAnchor: true, SquareFootage: 80_000, AnnualRent: 900_000,
				AnnualSales: 40_000_000, CreditRating: "AA", LeaseExpiry: fixedNow.AddDate(8, 0, 0)},
			{Name: "Inline", SquareFootage: 20_000, AnnualRent: 600_000,
				LeaseExpiry: fixedNow.AddDate(3, 0, 0)},
		}
		res := Anchors(tenants, fixedNow)
		assert.Equal(t, 1, res.AnchorCount)
		assert.InDelta(t, 80.0, res.AnchorGLAPct, 0.01)
		assert.InDelta(t, 60.0, res.AnchorRentPct, 0.01)
		assert.Equal(t, fixedNow.AddDate(8, 0, 0), res.SoonestExpiry)
	})

	t.Run("no anchors is high risk", func(t *testing.T) {
		res := Anchors([]adapt.CanonicalTenant{{Name: "Inline", SquareFootage: 1}}, fixedNow)
		assert.Zero(t, res.AnchorCount)
		assert.Equal(t, RiskHigh, res.Risk)
	})
}
