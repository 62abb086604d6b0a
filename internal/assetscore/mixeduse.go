package assetscore

import (
	"strings"

	"github.com/sells-group/deal-analyzer/internal/model"
)

// complementaryPairs are use combinations that reinforce each other's
// traffic and demand.
var complementaryPairs = [][2]string{
	{"retail", "office"},
	{"retail", "residential"},
	{"office", "residential"},
}

// SynergyResult is the mixed-use component synergy assessment.
type SynergyResult struct {
	Score          float64   `json:"score"`
	Risk           RiskLevel `json:"risk"`
	ComponentCount int       `json:"componentCount"`
	LargestSharePct float64  `json:"largestSharePct"`
	Drivers        []string  `json:"drivers,omitempty"`
}

// Synergy scores a mixed-use property from a base of 50: three or more
// components +10; balanced massing (no component above 70% of SF) +15, any
// above 85% -15; each complementary pair present +5; shared parking +10;
// occupancy spread between components above 20 points -10.
func Synergy(components []model.MixedUseComponent, sharedParking bool) SynergyResult {
	res := SynergyResult{ComponentCount: len(components)}
	score := 50.0
	var drivers []string

	var totalSF, largest float64
	uses := map[string]bool{}
	minOcc, maxOcc := 101.0, -1.0
	for _, c := range components {
		totalSF += c.SquareFootage
		if c.SquareFootage > largest {
			largest = c.SquareFootage
		}
		uses[strings.ToLower(c.Use)] = true
		if c.OccupancyRate > 0 {
			if c.OccupancyRate < minOcc {
				minOcc = c.OccupancyRate
			}
			if c.OccupancyRate > maxOcc {
				maxOcc = c.OccupancyRate
			}
		}
	}

	if len(components) >= 3 {
		score += 10
		drivers = append(drivers, "three or more uses")
	}

	if totalSF > 0 {
		share := largest / totalSF * 100
		res.LargestSharePct = round2(share)
		switch {
		case share > 85:
			score -= 15
			drivers = append(drivers, "single use dominates massing")
		case share <= 70:
			score += 15
			drivers = append(drivers, "balanced component massing")
		}
	}

	for _, pair := range complementaryPairs {
		if uses[pair[0]] && uses[pair[1]] {
			score += 5
			drivers = append(drivers, "complementary uses: "+pair[0]+" + "+pair[1])
		}
	}

	if sharedParking {
		score += 10
		drivers = append(drivers, "shared parking across uses")
	}

	if maxOcc >= 0 && maxOcc-minOcc > 20 {
		score -= 10
		drivers = append(drivers, "occupancy spread above 20 points between components")
	}

	score = clamp100(score)
	res.Score = round2(score)
	res.Risk = riskFromScore(score)
	res.Drivers = drivers
	return res
}

// BalanceResult reports each component's share of square footage and income.
type BalanceResult struct {
	Components []ComponentShare `json:"components"`
	Balanced   bool             `json:"balanced"`
}

// ComponentShare is one use's share of the whole.
type ComponentShare struct {
	Use       string  `json:"use"`
	SFSharePct float64 `json:"sfSharePct"`
	IncomeSharePct float64 `json:"incomeSharePct"`
}

// Balance computes SF and income shares per component. The property is
// balanced when no component exceeds 70% on either measure.
func Balance(components []model.MixedUseComponent) BalanceResult {
	var totalSF, totalIncome float64
	for _, c := range components {
		totalSF += c.SquareFootage
		totalIncome += c.AnnualIncome
	}

	res := BalanceResult{Balanced: len(components) > 0}
	for _, c := range components {
		s := ComponentShare{Use: c.Use}
		if totalSF > 0 {
			s.SFSharePct = round2(c.SquareFootage / totalSF * 100)
		}
		if totalIncome > 0 {
			s.IncomeSharePct = round2(c.AnnualIncome / totalIncome * 100)
		}
		if s.SFSharePct > 70 || s.IncomeSharePct > 70 {
			res.Balanced = false
		}
		res.Components = append(res.Components, s)
	}
	return res
}
