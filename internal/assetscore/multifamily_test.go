package assetscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

func mixedUnits() []adapt.CanonicalUnit {
	return []adapt.CanonicalUnit{
		{UnitType: "1BR", Count: 60, SquareFootage: 700, CurrentRent: 1_350, MarketRent: 1_500},
		{UnitType: "2BR", Count: 40, SquareFootage: 1_000, CurrentRent: 1_700, MarketRent: 1_900},
	}
}

func TestRevenuePerformance(t *testing.T) {
	t.Run("upside deal", func(t *testing.T) {
		res := RevenuePerformance(mixedUnits(), RevenueInputs{
			OccupancyPct:       96,
			OtherIncomePerUnit: 55,
			AnnualTurnoverPct:  35,
		})
		// In-place (60*1350+40*1700)/100 = 1490; market (60*1500+40*1900)/100
		// = 1660. LTL = 10.24% -> +15; occupancy +10; other income +5;
		// turnover +10. 60+40 = 100.
		assert.InDelta(t, 10.24, res.LossToLeasePct, 0.05)
		assert.InDelta(t, 100.0, res.Score, 0.01)
		assert.Equal(t, RiskLow, res.Risk)
	})

	t.Run("over-market rents penalized", func(t *testing.T) {
		units := []adapt.CanonicalUnit{
			{UnitType: "1BR", Count: 10, CurrentRent: 1_600, MarketRent: 1_500},
		}
		res := RevenuePerformance(units, RevenueInputs{OccupancyPct: 80, ConcessionsPct: 6, AnnualTurnoverPct: 65})
		// 60 -10 LTL -15 occupancy -10 turnover -10 concessions = 15.
		assert.InDelta(t, 15.0, res.Score, 0.01)
		assert.Equal(t, RiskHigh, res.Risk)
		assert.Negative(t, res.LossToLeasePct)
	})

	t.Run("missing inputs stay neutral", func(t *testing.T) {
		res := RevenuePerformance(nil, RevenueInputs{})
		assert.InDelta(t, 60.0, res.Score, 0.01)
	})
}

func TestUnitMix(t *testing.T) {
	res := UnitMix(mixedUnits())
	require.Len(t, res.Entries, 2)
	assert.Equal(t, 100, res.TotalUnits)
	assert.False(t, res.Concentrated)

	oneBR := res.Entries[0]
	assert.Equal(t, "1BR", oneBR.UnitType)
	assert.InDelta(t, 60.0, oneBR.PctOfUnits, 0.01)
	assert.InDelta(t, 1_350.0, oneBR.AvgCurrentRent, 0.01)
	// $1350 x 12 / 700 SF = $23.14/SF/yr.
	assert.InDelta(t, 23.14, oneBR.RentPSF, 0.01)
}

func TestUnitMixConcentration(t *testing.T) {
	res := UnitMix([]adapt.CanonicalUnit{
		{UnitType: "Studio", Count: 90, CurrentRent: 1_000, MarketRent: 1_000},
		{UnitType: "2BR", Count: 10, CurrentRent: 1_800, MarketRent: 1_800},
	})
	assert.True(t, res.Concentrated)
	assert.Equal(t, "Studio", res.DominantType)
}

func TestRenovation(t *testing.T) {
	units := []adapt.CanonicalUnit{
		{UnitType: "1BR", Count: 30, Renovated: true},
		{UnitType: "1BR", Count: 70, Renovated: false},
	}
	r := Renovation(units, 12_000, 150)
	assert.Equal(t, 70, r.UnrenovatedUnits)
	assert.InDelta(t, 840_000.0, r.ProgramCost, 0.01)
	assert.InDelta(t, 126_000.0, r.AnnualPremium, 0.01)
	assert.InDelta(t, 6.67, r.PaybackYears, 0.01)
}

func TestTurnover(t *testing.T) {
	tc := Turnover(100, 50, 2_500, 1_500, 21)
	assert.InDelta(t, 50.0, tc.TurnsPerYear, 0.01)
	assert.InDelta(t, 125_000.0, tc.AnnualCost, 0.01)
	// 50 turns x ($1500/30.44 per day) x 21 days vacant.
	assert.InDelta(t, 51_742.0, tc.VacancyDrag, 50)
}

func TestAffordabilityCheck(t *testing.T) {
	assert.Equal(t, "affordable", AffordabilityCheck(1_200, 75_000).Classification) // 19.2%
	assert.Equal(t, "moderate", AffordabilityCheck(1_700, 75_000).Classification)   // 27.2%
	assert.Equal(t, "burdened", AffordabilityCheck(2_200, 75_000).Classification)   // 35.2%
	assert.Equal(t, "unknown", AffordabilityCheck(1_200, 0).Classification)
}
