// Package model defines the input and output types shared across the
// deal-analyzer engine: the property facts bag, metric selection, computed
// metric results, and persisted analysis runs.
package model

// PropertyType identifies the asset class of a property.
type PropertyType string

const (
	PropertyOffice      PropertyType = "office"
	PropertyRetail      PropertyType = "retail"
	PropertyIndustrial  PropertyType = "industrial"
	PropertyMultifamily PropertyType = "multifamily"
	PropertyMixedUse    PropertyType = "mixed-use"
)

// PropertyFacts is the loosely-populated bag of facts supplied by the caller.
// Every field is optional; a zero value means the field was not provided.
// Per-metric requirements are enforced by the validate package, not here.
//
// Money and area fields are annual dollars and square feet unless the field
// name says otherwise. Rates and ratios expressed as percentages are on the
// 0-100 scale.
type PropertyFacts struct {
	// Identity.
	PropertyName string       `json:"propertyName,omitempty" yaml:"propertyName"`
	Address      string       `json:"address,omitempty" yaml:"address"`
	City         string       `json:"city,omitempty" yaml:"city"`
	State        string       `json:"state,omitempty" yaml:"state"`
	ZipCode      string       `json:"zipCode,omitempty" yaml:"zipCode"`
	PropertyType PropertyType `json:"propertyType,omitempty" yaml:"propertyType"`
	YearBuilt    int          `json:"yearBuilt,omitempty" yaml:"yearBuilt"`
	YearRenovated int         `json:"yearRenovated,omitempty" yaml:"yearRenovated"`

	// Pricing and physical.
	PurchasePrice      float64 `json:"purchasePrice,omitempty" yaml:"purchasePrice"`
	SquareFootage      float64 `json:"squareFootage,omitempty" yaml:"squareFootage"`
	TotalSquareFootage float64 `json:"totalSquareFootage,omitempty" yaml:"totalSquareFootage"`
	GrossLeasableArea  float64 `json:"grossLeasableArea,omitempty" yaml:"grossLeasableArea"`
	LandAreaAcres      float64 `json:"landAreaAcres,omitempty" yaml:"landAreaAcres"`
	NumberOfUnits      int     `json:"numberOfUnits,omitempty" yaml:"numberOfUnits"`
	NumberOfFloors     int     `json:"numberOfFloors,omitempty" yaml:"numberOfFloors"`
	ParkingSpaces      int     `json:"parkingSpaces,omitempty" yaml:"parkingSpaces"`

	// Income and operations.
	CurrentNOI           float64 `json:"currentNOI,omitempty" yaml:"currentNOI"`
	ProjectedNOI         float64 `json:"projectedNOI,omitempty" yaml:"projectedNOI"`
	GrossIncome          float64 `json:"grossIncome,omitempty" yaml:"grossIncome"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome,omitempty" yaml:"effectiveGrossIncome"`
	OperatingExpenses    float64 `json:"operatingExpenses,omitempty" yaml:"operatingExpenses"`
	OccupancyRate        float64 `json:"occupancyRate,omitempty" yaml:"occupancyRate"`
	AnnualCashFlow       float64 `json:"annualCashFlow,omitempty" yaml:"annualCashFlow"`
	TotalCashInvested    float64 `json:"totalCashInvested,omitempty" yaml:"totalCashInvested"`
	HoldingPeriodYears   float64 `json:"holdingPeriodYears,omitempty" yaml:"holdingPeriodYears"`
	DiscountRate         float64 `json:"discountRate,omitempty" yaml:"discountRate"`
	ExitCapRate          float64 `json:"exitCapRate,omitempty" yaml:"exitCapRate"`

	// Financing.
	LoanAmount    float64 `json:"loanAmount,omitempty" yaml:"loanAmount"`
	InterestRate  float64 `json:"interestRate,omitempty" yaml:"interestRate"`
	LoanTermYears float64 `json:"loanTermYears,omitempty" yaml:"loanTermYears"`

	// Market context.
	MarketVacancy        float64 `json:"marketVacancy,omitempty" yaml:"marketVacancy"`
	SubmarketVacancy     float64 `json:"submarketVacancy,omitempty" yaml:"submarketVacancy"`
	MarketCapRate        float64 `json:"marketCapRate,omitempty" yaml:"marketCapRate"`
	AvgMarketRentPSF     float64 `json:"avgMarketRentPSF,omitempty" yaml:"avgMarketRentPSF"`
	PopulationGrowthRate float64 `json:"populationGrowthRate,omitempty" yaml:"populationGrowthRate"`
	MedianHouseholdIncome float64 `json:"medianHouseholdIncome,omitempty" yaml:"medianHouseholdIncome"`
	TradeAreaPopulation  float64 `json:"tradeAreaPopulation,omitempty" yaml:"tradeAreaPopulation"`
	TrafficCount         float64 `json:"trafficCount,omitempty" yaml:"trafficCount"`
	AreaMedianWage       float64 `json:"areaMedianWage,omitempty" yaml:"areaMedianWage"`

	// Office.
	OfficeClass          string  `json:"officeClass,omitempty" yaml:"officeClass"`
	FloorPlateSF         float64 `json:"floorPlateSF,omitempty" yaml:"floorPlateSF"`
	VacantSF             float64 `json:"vacantSF,omitempty" yaml:"vacantSF"`
	SubleaseSF           float64 `json:"subleaseSF,omitempty" yaml:"subleaseSF"`
	AvgInPlaceRentPSF    float64 `json:"avgInPlaceRentPSF,omitempty" yaml:"avgInPlaceRentPSF"`
	OperatingExpensePSF  float64 `json:"operatingExpensePSF,omitempty" yaml:"operatingExpensePSF"`
	MarketExpensePSF     float64 `json:"marketExpensePSF,omitempty" yaml:"marketExpensePSF"`

	// Retail.
	AnchorTenantName string  `json:"anchorTenantName,omitempty" yaml:"anchorTenantName"`
	AnchorGLA        float64 `json:"anchorGLA,omitempty" yaml:"anchorGLA"`
	InlineGLA        float64 `json:"inlineGLA,omitempty" yaml:"inlineGLA"`
	PadSites         int     `json:"padSites,omitempty" yaml:"padSites"`

	// Industrial.
	IndustrialType    string  `json:"industrialType,omitempty" yaml:"industrialType"`
	ClearHeightFt     float64 `json:"clearHeightFt,omitempty" yaml:"clearHeightFt"`
	NumDockDoors      int     `json:"numDockDoors,omitempty" yaml:"numDockDoors"`
	NumDriveInDoors   int     `json:"numDriveInDoors,omitempty" yaml:"numDriveInDoors"`
	TruckCourtDepthFt float64 `json:"truckCourtDepthFt,omitempty" yaml:"truckCourtDepthFt"`
	PowerCapacityKW   float64 `json:"powerCapacityKW,omitempty" yaml:"powerCapacityKW"`
	ColumnSpacingFt   float64 `json:"columnSpacingFt,omitempty" yaml:"columnSpacingFt"`
	SiteCoveragePct   float64 `json:"siteCoveragePct,omitempty" yaml:"siteCoveragePct"`
	RailServed        bool    `json:"railServed,omitempty" yaml:"railServed"`
	CrossDock         bool    `json:"crossDock,omitempty" yaml:"crossDock"`
	TrailerParking    bool    `json:"trailerParking,omitempty" yaml:"trailerParking"`
	SprinklerSystem   string  `json:"sprinklerSystem,omitempty" yaml:"sprinklerSystem"`
	DistToHighwayMi   float64 `json:"distToHighwayMi,omitempty" yaml:"distToHighwayMi"`
	DistToPortMi      float64 `json:"distToPortMi,omitempty" yaml:"distToPortMi"`

	// Multifamily.
	AvgInPlaceRent     float64 `json:"avgInPlaceRent,omitempty" yaml:"avgInPlaceRent"`
	AvgMarketRent      float64 `json:"avgMarketRent,omitempty" yaml:"avgMarketRent"`
	OtherIncomePerUnit float64 `json:"otherIncomePerUnit,omitempty" yaml:"otherIncomePerUnit"`
	AnnualTurnoverRate float64 `json:"annualTurnoverRate,omitempty" yaml:"annualTurnoverRate"`
	TurnoverCostPerUnit float64 `json:"turnoverCostPerUnit,omitempty" yaml:"turnoverCostPerUnit"`
	AvgDaysToLease     float64 `json:"avgDaysToLease,omitempty" yaml:"avgDaysToLease"`
	ConcessionsPct     float64 `json:"concessionsPct,omitempty" yaml:"concessionsPct"`
	RenovatedUnits     int     `json:"renovatedUnits,omitempty" yaml:"renovatedUnits"`
	RenovationCostPerUnit float64 `json:"renovationCostPerUnit,omitempty" yaml:"renovationCostPerUnit"`
	RenovationRentPremium float64 `json:"renovationRentPremium,omitempty" yaml:"renovationRentPremium"`

	// Mixed-use.
	Components []MixedUseComponent `json:"components,omitempty" yaml:"components"`
	SharedParking bool             `json:"sharedParking,omitempty" yaml:"sharedParking"`

	// Raw nested inputs of unknown provenance. The adapt package turns these
	// into canonical records; the engine never reads them directly.
	Tenants      []map[string]any `json:"tenants,omitempty" yaml:"tenants"`
	Units        []map[string]any `json:"units,omitempty" yaml:"units"`
	BuildingSpec map[string]any   `json:"buildingSpec,omitempty" yaml:"buildingSpec"`
}

// MixedUseComponent describes one use within a mixed-use property.
type MixedUseComponent struct {
	Use           string  `json:"use" yaml:"use"`
	SquareFootage float64 `json:"squareFootage" yaml:"squareFootage"`
	OccupancyRate float64 `json:"occupancyRate,omitempty" yaml:"occupancyRate"`
	AnnualIncome  float64 `json:"annualIncome,omitempty" yaml:"annualIncome"`
}

// LeasableSF returns the first populated of square footage, total square
// footage, and gross leasable area. Zero when none are set.
func (f *PropertyFacts) LeasableSF() float64 {
	switch {
	case f.SquareFootage > 0:
		return f.SquareFootage
	case f.TotalSquareFootage > 0:
		return f.TotalSquareFootage
	case f.GrossLeasableArea > 0:
		return f.GrossLeasableArea
	default:
		return 0
	}
}
