package assetscore

import (
	"sort"
	"strings"
	"time"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// Co-tenancy exposure policy: a triggered clause with an absent required
// co-tenant exposes 80% of the tenant's SF and rent; a required co-tenant
// whose own lease rolls within 24 months exposes 30-50% proportional to the
// months remaining.
const (
	absentCoTenantExposure = 0.80
	rollingWindowMonths    = 24
	rollingMaxExposure     = 0.50
	rollingMinExposure     = 0.30
)

// TenantExposure details one tenant's co-tenancy exposure.
type TenantExposure struct {
	TenantName       string  `json:"tenantName"`
	RequiredCoTenant string  `json:"requiredCoTenant"`
	Reason           string  `json:"reason"`
	ExposureFraction float64 `json:"exposureFraction"`
	ExposedSF        float64 `json:"exposedSF"`
	ExposedRent      float64 `json:"exposedRent"`
}

// CoTenancyResult aggregates clause exposure across the rent roll.
type CoTenancyResult struct {
	TotalGLA    float64          `json:"totalGLA"`
	ExposedGLA  float64          `json:"exposedGLA"`
	ExposedRent float64          `json:"exposedRent"`
	ExposurePct float64          `json:"exposurePct"`
	RiskLevel   string           `json:"riskLevel"`
	AtRisk      []TenantExposure `json:"atRisk,omitempty"`
}

// CoTenancy evaluates co-tenancy clause exposure across all tenants.
// Required co-tenants are matched by case-insensitive name containment
// against the rent roll.
func CoTenancy(tenants []adapt.CanonicalTenant, now time.Time) CoTenancyResult {
	var res CoTenancyResult
	for i := range tenants {
		res.TotalGLA += tenants[i].SquareFootage
	}

	for i := range tenants {
		t := &tenants[i]
		if !t.HasCoTenancyClause || t.RequiredCoTenant == "" {
			continue
		}

		required := findTenant(tenants, t.RequiredCoTenant)
		var fraction float64
		var reason string
		switch {
		case required == nil:
			fraction = absentCoTenantExposure
			reason = "required co-tenant absent"
		default:
			months := required.MonthsRemaining(now)
			if months >= rollingWindowMonths {
				continue
			}
			// 50% at 0 months remaining tapering to 30% at 24.
			fraction = rollingMaxExposure - (rollingMaxExposure-rollingMinExposure)*(months/rollingWindowMonths)
			reason = "required co-tenant lease expires within 24 months"
		}

		exp := TenantExposure{
			TenantName:       t.Name,
			RequiredCoTenant: t.RequiredCoTenant,
			Reason:           reason,
			ExposureFraction: round2(fraction),
			ExposedSF:        round2(t.SquareFootage * fraction),
			ExposedRent:      round2(t.AnnualRent * fraction),
		}
		res.ExposedGLA += exp.ExposedSF
		res.ExposedRent += exp.ExposedRent
		res.AtRisk = append(res.AtRisk, exp)
	}

	if res.TotalGLA > 0 {
		res.ExposurePct = round2(res.ExposedGLA / res.TotalGLA * 100)
	}
	res.RiskLevel = coTenancyRisk(res.ExposurePct)

	// Largest exposures first.
	sort.Slice(res.AtRisk, func(i, j int) bool {
		return res.AtRisk[i].ExposedRent > res.AtRisk[j].ExposedRent
	})
	return res
}

func coTenancyRisk(exposurePct float64) string {
	switch {
	case exposurePct < 5:
		return "Low"
	case exposurePct < 15:
		return "Medium"
	case exposurePct < 25:
		return "High"
	default:
		return "Critical"
	}
}

func findTenant(tenants []adapt.CanonicalTenant, name string) *adapt.CanonicalTenant {
	needle := strings.ToLower(name)
	for i := range tenants {
		if strings.Contains(strings.ToLower(tenants[i].Name), needle) {
			return &tenants[i]
		}
	}
	return nil
}

// RetailTenantScore is one tenant's health score and drivers.
type RetailTenantScore struct {
	TenantName        string    `json:"tenantName"`
	Score             float64   `json:"score"`
	Risk              RiskLevel `json:"risk"`
	SalesPSF          float64   `json:"salesPSF"`
	OccupancyCostPct  float64   `json:"occupancyCostPct"`
	Drivers           []string  `json:"drivers,omitempty"`
}

// RetailHealthResult is the rent-roll-wide retail health summary.
type RetailHealthResult struct {
	AvgScore     float64             `json:"avgScore"`
	Risk         RiskLevel           `json:"risk"`
	AvgSalesPSF  float64             `json:"avgSalesPSF"`
	TenantScores []RetailTenantScore `json:"tenantScores"`
}

// TenantHealth scores retail tenants from a base of 70 with fixed deltas:
// sales/SF bands (>=400 +15, >=300 +5, <200 -15), occupancy-cost-ratio bands
// (<10% +10, >15% -10, >20% -20 cumulative with the 15% band), national
// credit +10 / NR -5, and lease term (+5 beyond 36 months, -10 under 12).
func TenantHealth(tenants []adapt.CanonicalTenant, now time.Time) RetailHealthResult {
	var res RetailHealthResult
	var totalSF, totalSales, weightSum, weightedScore float64

	for i := range tenants {
		t := &tenants[i]
		score := 70.0
		var drivers []string

		var salesPSF float64
		if t.SquareFootage > 0 && t.AnnualSales > 0 {
			salesPSF = t.AnnualSales / t.SquareFootage
			switch {
			case salesPSF >= 400:
				score += 15
				drivers = append(drivers, "sales/SF above $400")
			case salesPSF >= 300:
				score += 5
				drivers = append(drivers, "sales/SF above $300")
			case salesPSF < 200:
				score -= 15
				drivers = append(drivers, "sales/SF below $200")
			}
		}

		var ocr float64
		if t.AnnualSales > 0 {
			ocr = t.AnnualRent / t.AnnualSales * 100
			switch {
			case ocr < 10:
				score += 10
				drivers = append(drivers, "occupancy cost under 10%")
			case ocr > 20:
				score -= 20
				drivers = append(drivers, "occupancy cost over 20%")
			case ocr > 15:
				score -= 10
				drivers = append(drivers, "occupancy cost over 15%")
			}
		}

		switch t.CreditRating {
		case "AAA", "AA", "A":
			score += 10
			drivers = append(drivers, "national credit")
		case "NR":
			score -= 5
		}

		months := t.MonthsRemaining(now)
		switch {
		case months > 36:
			score += 5
		case months < 12:
			score -= 10
			drivers = append(drivers, "lease rolls within 12 months")
		}

		score = clamp100(score)
		res.TenantScores = append(res.TenantScores, RetailTenantScore{
			TenantName:       t.Name,
			Score:            round2(score),
			Risk:             riskFromScore(score),
			SalesPSF:         round2(salesPSF),
			OccupancyCostPct: round2(ocr),
			Drivers:          drivers,
		})

		w := t.SquareFootage
		if w <= 0 {
			w = 1
		}
		weightSum += w
		weightedScore += w * score
		totalSF += t.SquareFootage
		totalSales += t.AnnualSales
	}

	if weightSum > 0 {
		res.AvgScore = round2(weightedScore / weightSum)
	}
	if totalSF > 0 {
		res.AvgSalesPSF = round2(totalSales / totalSF)
	}
	res.Risk = riskFromScore(res.AvgScore)
	return res
}

// AnchorHealth summarizes the anchor tenants' condition: their share of GLA
// and rent, weakest anchor score, and soonest anchor expiration.
type AnchorHealth struct {
	AnchorCount     int       `json:"anchorCount"`
	AnchorGLAPct    float64   `json:"anchorGLAPct"`
	AnchorRentPct   float64   `json:"anchorRentPct"`
	WeakestScore    float64   `json:"weakestScore"`
	SoonestExpiry   time.Time `json:"soonestExpiry"`
	Risk            RiskLevel `json:"risk"`
}

// Anchors evaluates anchor tenant health. Without anchors the result is
// high-risk by definition for anchored-retail analyses.
func Anchors(tenants []adapt.CanonicalTenant, now time.Time) AnchorHealth {
	health := TenantHealth(tenants, now)

	var res AnchorHealth
	res.WeakestScore = 100
	var totalGLA, totalRent, anchorGLA, anchorRent float64

	for i := range tenants {
		t := &tenants[i]
		totalGLA += t.SquareFootage
		totalRent += t.AnnualRent
		if !t.IsAnchor {
			continue
		}
		res.AnchorCount++
		anchorGLA += t.SquareFootage
		anchorRent += t.AnnualRent
		if res.SoonestExpiry.IsZero() || t.LeaseExpiry.Before(res.SoonestExpiry) {
			res.SoonestExpiry = t.LeaseExpiry
		}
		for _, ts := range health.TenantScores {
			if ts.TenantName == t.Name && ts.Score < res.WeakestScore {
				res.WeakestScore = ts.Score
			}
		}
	}

	if res.AnchorCount == 0 {
		res.WeakestScore = 0
		res.Risk = RiskHigh
		return res
	}
	if totalGLA > 0 {
		res.AnchorGLAPct = round2(anchorGLA / totalGLA * 100)
	}
	if totalRent > 0 {
		res.AnchorRentPct = round2(anchorRent / totalRent * 100)
	}
	res.Risk = riskFromScore(res.WeakestScore)
	return res
}
