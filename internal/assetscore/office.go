package assetscore

import (
	"sort"
	"time"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// stableIndustries get a small credit bonus in office tenant scoring.
var stableIndustries = map[string]bool{
	"Government": true,
	"Healthcare": true,
	"Legal":      true,
	"Finance":    true,
}

// OfficeTenantScore is one office tenant's credit score and drivers.
type OfficeTenantScore struct {
	TenantName     string    `json:"tenantName"`
	Score          float64   `json:"score"`
	Risk           RiskLevel `json:"risk"`
	PctOfBuilding  float64   `json:"pctOfBuilding"`
	MonthsRemaining float64  `json:"monthsRemaining"`
}

// OfficeCreditResult is the building-level tenant credit assessment.
type OfficeCreditResult struct {
	BuildingScore float64            `json:"buildingScore"`
	Risk          RiskLevel          `json:"risk"`
	WALTYears     float64            `json:"waltYears"`
	TenantScores  []OfficeTenantScore `json:"tenantScores"`
}

// TenantCredit scores each office tenant from a base of 50: rating tier
// (AAA +30 down to B -10, unrated -5), concentration above 15% of building
// SF -10, lease term (+15 beyond 60 months, +10 beyond 36, -15 under 12),
// and stable industry +5. The building score is the SF-weighted mean.
func TenantCredit(tenants []adapt.CanonicalTenant, now time.Time) OfficeCreditResult {
	var totalSF float64
	for i := range tenants {
		totalSF += tenants[i].SquareFootage
	}

	var res OfficeCreditResult
	var weightSum, weighted float64
	for i := range tenants {
		t := &tenants[i]
		score := 50.0

		score += ratingDelta(t.CreditRating)

		var pct float64
		if totalSF > 0 {
			pct = t.SquareFootage / totalSF * 100
			if pct > 15 {
				score -= 10
			}
		}

		months := t.MonthsRemaining(now)
		switch {
		case months >= 60:
			score += 15
		case months >= 36:
			score += 10
		case months < 12:
			score -= 15
		}

		if stableIndustries[t.Industry] {
			score += 5
		}

		score = clamp100(score)
		res.TenantScores = append(res.TenantScores, OfficeTenantScore{
			TenantName:      t.Name,
			Score:           round2(score),
			Risk:            riskFromScore(score),
			PctOfBuilding:   round2(pct),
			MonthsRemaining: round2(months),
		})

		w := t.SquareFootage
		if w <= 0 {
			w = 1
		}
		weightSum += w
		weighted += w * score
	}

	if weightSum > 0 {
		res.BuildingScore = round2(weighted / weightSum)
	}
	res.Risk = riskFromScore(res.BuildingScore)
	res.WALTYears = WALT(tenants, now)

	// Weakest credits first for review.
	sort.Slice(res.TenantScores, func(i, j int) bool {
		return res.TenantScores[i].Score < res.TenantScores[j].Score
	})
	return res
}

func ratingDelta(rating string) float64 {
	switch rating {
	case "AAA":
		return 30
	case "AA":
		return 25
	case "A":
		return 20
	case "BBB":
		return 10
	case "BB":
		return 0
	case "B":
		return -10
	default:
		return -5
	}
}

// VacancyPosture compares in-place vacancy against the submarket.
type VacancyPosture struct {
	VacancyPct      float64 `json:"vacancyPct"`
	SubmarketPct    float64 `json:"submarketPct"`
	SpreadPts       float64 `json:"spreadPts"`
	SubleaseShadowPct float64 `json:"subleaseShadowPct"`
	Posture         string  `json:"posture"`
}

// Vacancy classifies the property's vacancy posture relative to its
// submarket: better than submarket by 3+ points is "outperforming", within
// 3 points "in line", behind by more "lagging". Sublease space counts as
// shadow vacancy but does not move the classification.
func Vacancy(vacantSF, subleaseSF, totalSF, submarketVacancyPct float64) VacancyPosture {
	var p VacancyPosture
	p.SubmarketPct = round2(submarketVacancyPct)
	if totalSF > 0 {
		p.VacancyPct = round2(vacantSF / totalSF * 100)
		p.SubleaseShadowPct = round2(subleaseSF / totalSF * 100)
	}
	p.SpreadPts = round2(p.VacancyPct - p.SubmarketPct)
	switch {
	case p.SpreadPts <= -3:
		p.Posture = "outperforming"
	case p.SpreadPts < 3:
		p.Posture = "in line"
	default:
		p.Posture = "lagging"
	}
	return p
}

// ExpenseBenchmark compares operating expense PSF to the market figure.
type ExpenseBenchmark struct {
	ExpensePSF     float64 `json:"expensePSF"`
	MarketPSF      float64 `json:"marketPSF"`
	VariancePct    float64 `json:"variancePct"`
	Classification string  `json:"classification"`
}

// Expenses classifies expense efficiency: 10%+ under market "efficient",
// within 10% "in line", above "heavy".
func Expenses(expensePSF, marketPSF float64) ExpenseBenchmark {
	b := ExpenseBenchmark{
		ExpensePSF: round2(expensePSF),
		MarketPSF:  round2(marketPSF),
	}
	if marketPSF > 0 {
		b.VariancePct = round2((expensePSF - marketPSF) / marketPSF * 100)
	}
	switch {
	case b.VariancePct <= -10:
		b.Classification = "efficient"
	case b.VariancePct < 10:
		b.Classification = "in line"
	default:
		b.Classification = "heavy"
	}
	return b
}

// ParkingAdequacy scores the parking ratio against the office norm of 3-4
// spaces per 1,000 SF.
type ParkingAdequacy struct {
	RatioPer1000SF float64 `json:"ratioPer1000SF"`
	Adequacy       string  `json:"adequacy"`
}

// Parking computes spaces per 1,000 SF: >=4 "surplus", >=3 "adequate",
// >=2 "tight", else "deficient".
func Parking(spaces int, totalSF float64) ParkingAdequacy {
	var p ParkingAdequacy
	if totalSF > 0 {
		p.RatioPer1000SF = round2(float64(spaces) / (totalSF / 1000))
	}
	switch {
	case p.RatioPer1000SF >= 4:
		p.Adequacy = "surplus"
	case p.RatioPer1000SF >= 3:
		p.Adequacy = "adequate"
	case p.RatioPer1000SF >= 2:
		p.Adequacy = "tight"
	default:
		p.Adequacy = "deficient"
	}
	return p
}
