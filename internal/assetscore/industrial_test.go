package assetscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deal-analyzer/internal/adapt"
)

// idealWarehouse hits every ideal target for its type.
func idealWarehouse() adapt.CanonicalBuildingSpec {
	return adapt.CanonicalBuildingSpec{
		IndustrialType:    "warehouse",
		ClearHeightFt:     36,
		SquareFootage:     200_000,
		DockDoors:         20, // 1.0 per 10k SF
		TruckCourtDepthFt: 135,
		PowerCapacityKW:   300, // 1.5 W/SF
		ColumnSpacingFt:   52,
		SprinklerSystem:   "esfr",
		RailServed:        true,
		TrailerParking:    true,
		CrossDock:         true,
	}
}

func TestFunctionalityIdealBuilding(t *testing.T) {
	res := Functionality(idealWarehouse())

	assert.InDelta(t, 100.0, res.Composite, 0.01)
	assert.Equal(t, ClassA, res.Class)
	assert.Empty(t, res.Improvements)
	for name, score := range res.Components {
		assert.InDelta(t, 100.0, score, 0.01, name)
	}
}

func TestFunctionalityCompositeWeights(t *testing.T) {
	// Zero out only the power score; composite should drop by exactly the
	// 0.20 power weight.
	spec := idealWarehouse()
	spec.PowerCapacityKW = 0
	res := Functionality(spec)
	assert.InDelta(t, 80.0, res.Composite, 0.01)
}

func TestTruckCourtDerating(t *testing.T) {
	tests := []struct {
		depth float64
		want  float64
	}{
		{135, 100},
		{125, 90},
		{115, 70},
		{90, 50},
	}
	for _, tt := range tests {
		spec := idealWarehouse()
		spec.TruckCourtDepthFt = tt.depth
		res := Functionality(spec)
		assert.InDelta(t, tt.want, res.Components["loading"], 0.01, "depth %.0f", tt.depth)
	}
}

func TestThresholdScore(t *testing.T) {
	tests := []struct {
		name  string
		value, min, ideal, want float64
	}{
		{"below half minimum", 10, 24, 32, 0},
		{"at minimum", 24, 24, 32, 60},
		{"midway to ideal", 28, 24, 32, 80},
		{"at ideal", 32, 24, 32, 100},
		{"above ideal", 40, 24, 32, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, thresholdScore(tt.value, tt.min, tt.ideal), 0.01)
		})
	}
}

func TestClassification(t *testing.T) {
	t.Run("class A needs height as well as score", func(t *testing.T) {
		// A highly functional flex building with 18 ft clear can never be
		// Class A.
		spec := adapt.CanonicalBuildingSpec{
			IndustrialType:    "flex",
			ClearHeightFt:     18,
			SquareFootage:     50_000,
			DockDoors:         3,
			TruckCourtDepthFt: 130,
			PowerCapacityKW:   150,
			ColumnSpacingFt:   50,
			SprinklerSystem:   "esfr",
			RailServed:        true,
			TrailerParking:    true,
			CrossDock:         true,
		}
		res := Functionality(spec)
		assert.GreaterOrEqual(t, res.Composite, 85.0)
		assert.Equal(t, ClassC, res.Class, "18 ft clear cannot make Class A or B")
	})

	t.Run("class B", func(t *testing.T) {
		spec := idealWarehouse()
		spec.ClearHeightFt = 26
		spec.PowerCapacityKW = 120 // 0.6 W/SF: slightly above min
		spec.ColumnSpacingFt = 40
		res := Functionality(spec)
		assert.GreaterOrEqual(t, res.Composite, 70.0)
		assert.Less(t, res.Composite, 85.0)
		assert.Equal(t, ClassB, res.Class)
	})
}

func TestColdStorageTargetsAreStricter(t *testing.T) {
	spec := idealWarehouse()
	warehouse := Functionality(spec)

	spec.IndustrialType = "cold_storage"
	cold := Functionality(spec)

	// 36 ft clear and 1.5 W/SF are ideal for warehouse but short of cold
	// storage's 36 ft ideal height and 8 W/SF power target.
	assert.Less(t, cold.Composite, warehouse.Composite)
}

func TestImprovementsRankedWeakestFirst(t *testing.T) {
	spec := idealWarehouse()
	spec.PowerCapacityKW = 0
	spec.ColumnSpacingFt = 32
	res := Functionality(spec)

	require.NotEmpty(t, res.Improvements)
	assert.Equal(t, "power", res.Improvements[0].Component)
	assert.NotEmpty(t, res.Improvements[0].Note)
	for i := 1; i < len(res.Improvements); i++ {
		assert.GreaterOrEqual(t, res.Improvements[i].Score, res.Improvements[i-1].Score)
	}
}

func TestUnknownIndustrialTypeDefaultsToWarehouse(t *testing.T) {
	spec := idealWarehouse()
	spec.IndustrialType = "mystery"
	res := Functionality(spec)
	assert.Equal(t, "warehouse", res.IndustrialType)
	assert.InDelta(t, 100.0, res.Composite, 0.01)
}

func TestTenantQuality(t *testing.T) {
	invGrade := []adapt.CanonicalTenant{
		{CreditRating: "BBB"}, {CreditRating: "A"},
	}
	score, risk := TenantQuality(invGrade, 6)
	// 60 +15 all investment grade +15 WALT >= 5y = 90.
	assert.InDelta(t, 90.0, score, 0.01)
	assert.Equal(t, RiskLow, risk)

	single := []adapt.CanonicalTenant{{CreditRating: "NR"}}
	score, risk = TenantQuality(single, 1)
	// 60 -5 no inv grade -10 short WALT -10 single tenant = 35.
	assert.InDelta(t, 35.0, score, 0.01)
	assert.Equal(t, RiskHigh, risk)
}
