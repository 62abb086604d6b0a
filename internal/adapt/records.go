// Package adapt normalizes loosely-shaped tenant, unit, and building inputs
// into canonical, fully-populated records.
//
// Callers supply records of unknown provenance as generic maps; each
// canonical field takes the first present value across an ordered list of
// accepted source keys and otherwise a fixed default. Adaptation is total:
// it never fails, only defaults. Canonical records are rebuilt on every call
// and never mutated afterwards.
package adapt

import "time"

// CanonicalTenant is a fully-populated tenant record. Rents are annual
// dollars; SquareFootage is rentable square feet.
type CanonicalTenant struct {
	Name               string    `json:"name"`
	Industry           string    `json:"industry"`
	CreditRating       string    `json:"creditRating"`
	SquareFootage      float64   `json:"squareFootage"`
	RentPSF            float64   `json:"rentPSF"`
	AnnualRent         float64   `json:"annualRent"`
	AnnualSales        float64   `json:"annualSales"`
	LeaseStart         time.Time `json:"leaseStart"`
	LeaseExpiry        time.Time `json:"leaseExpiry"`
	RenewalProbability float64   `json:"renewalProbability"`
	PercentageRentRate float64   `json:"percentageRentRate"`
	HasCoTenancyClause bool      `json:"hasCoTenancyClause"`
	RequiredCoTenant   string    `json:"requiredCoTenant"`
	IsAnchor           bool      `json:"isAnchor"`
}

// MonthsRemaining returns whole and fractional months from now until lease
// expiry, floored at zero for expired leases.
func (t *CanonicalTenant) MonthsRemaining(now time.Time) float64 {
	if !t.LeaseExpiry.After(now) {
		return 0
	}
	return t.LeaseExpiry.Sub(now).Hours() / 24 / 30.44
}

// CanonicalUnit is a fully-populated multifamily unit-type record. Rents are
// monthly dollars per unit.
type CanonicalUnit struct {
	UnitType      string  `json:"unitType"`
	Count         int     `json:"count"`
	SquareFootage float64 `json:"squareFootage"`
	CurrentRent   float64 `json:"currentRent"`
	MarketRent    float64 `json:"marketRent"`
	Occupied      bool    `json:"occupied"`
	Renovated     bool    `json:"renovated"`
}

// CanonicalBuildingSpec is a fully-populated industrial building record.
type CanonicalBuildingSpec struct {
	IndustrialType    string  `json:"industrialType"`
	ClearHeightFt     float64 `json:"clearHeightFt"`
	DockDoors         int     `json:"dockDoors"`
	DriveInDoors      int     `json:"driveInDoors"`
	TruckCourtDepthFt float64 `json:"truckCourtDepthFt"`
	PowerCapacityKW   float64 `json:"powerCapacityKW"`
	ColumnSpacingFt   float64 `json:"columnSpacingFt"`
	SquareFootage     float64 `json:"squareFootage"`
	SprinklerSystem   string  `json:"sprinklerSystem"`
	RailServed        bool    `json:"railServed"`
	CrossDock         bool    `json:"crossDock"`
	TrailerParking    bool    `json:"trailerParking"`
}
