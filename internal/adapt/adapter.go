package adapt

import "time"

// Tenant field defaults. Lease dates default relative to the adapter's now:
// an absent or unparsable start is "now", an absent or unparsable expiry is
// "now + 1 year".
const (
	defaultTenantName    = "Tenant"
	defaultCreditRating  = "NR"
	defaultIndustry      = "General"
	defaultRenewalProb   = 0.5
	defaultUnitType      = "1BR"
	defaultSprinkler     = "wet"
	defaultIndustrial    = "warehouse"
	defaultLeaseTermYear = 1
)

// Alias tables: the ordered source keys accepted for each canonical field.
// Order matters; the first present key wins.
var (
	tenantNameAliases     = []string{"name", "tenantName", "tenant_name", "tenant"}
	tenantIndustryAliases = []string{"industry", "sector", "businessType"}
	tenantRatingAliases   = []string{"creditRating", "rating", "credit", "credit_rating"}
	tenantSFAliases       = []string{"squareFootage", "sf", "area", "rentableSF", "gla", "square_feet"}
	tenantRentPSFAliases  = []string{"baseRentPSF", "rentPSF", "rent_psf", "rentPerSF"}
	tenantRentAliases     = []string{"annualRent", "totalRent", "annual_rent", "rent"}
	tenantSalesAliases    = []string{"annualSales", "grossSales", "sales"}
	tenantStartAliases    = []string{"leaseStart", "leaseCommencement", "startDate", "lease_start"}
	tenantExpiryAliases   = []string{"leaseExpiry", "leaseEnd", "expirationDate", "lease_end", "leaseExpiration"}
	tenantRenewalAliases  = []string{"renewalProbability", "renewalProb", "renewal_probability"}
	tenantPctRentAliases  = []string{"percentageRentRate", "percentageRent", "pctRentRate"}
	tenantCoTenAliases    = []string{"hasCoTenancyClause", "coTenancyClause", "cotenancy"}
	tenantReqCoAliases    = []string{"requiredCoTenant", "coTenancyRequired", "required_cotenant"}
	tenantAnchorAliases   = []string{"isAnchor", "anchor", "anchorTenant"}

	unitTypeAliases     = []string{"unitType", "type", "unit_type", "floorplan"}
	unitCountAliases    = []string{"count", "units", "numberOfUnits", "quantity"}
	unitSFAliases       = []string{"squareFootage", "sf", "area", "avgSF"}
	unitCurrentAliases  = []string{"currentRent", "inPlaceRent", "rent", "actualRent"}
	unitMarketAliases   = []string{"marketRent", "askingRent", "proformaRent"}
	unitOccupiedAliases = []string{"occupied", "isOccupied", "leased"}
	unitRenoAliases     = []string{"renovated", "isRenovated", "upgraded"}

	specTypeAliases     = []string{"industrialType", "buildingType", "subtype"}
	specClearAliases    = []string{"clearHeightFt", "clearHeight", "clear_height", "ceilingHeight"}
	specDockAliases     = []string{"dockDoors", "numDockDoors", "dock_doors", "docks"}
	specDriveInAliases  = []string{"driveInDoors", "numDriveInDoors", "drive_in_doors"}
	specCourtAliases    = []string{"truckCourtDepthFt", "truckCourtDepth", "truck_court_depth"}
	specPowerAliases    = []string{"powerCapacityKW", "powerKW", "power", "amps"}
	specColumnAliases   = []string{"columnSpacingFt", "columnSpacing", "column_spacing"}
	specSFAliases       = []string{"squareFootage", "sf", "buildingSF", "area"}
	specSprinklerAliases = []string{"sprinklerSystem", "sprinkler", "fireSuppression"}
	specRailAliases     = []string{"railServed", "rail", "railAccess"}
	specCrossAliases    = []string{"crossDock", "cross_dock", "isCrossDock"}
	specTrailerAliases  = []string{"trailerParking", "trailer_parking", "trailerStorage"}
)

// Adapter builds canonical records with a fixed reference time. Lease-date
// defaults depend on now, so tests inject a fixed clock.
type Adapter struct {
	now time.Time
}

// New creates an Adapter anchored at the given reference time.
func New(now time.Time) *Adapter {
	return &Adapter{now: now}
}

// Tenants converts raw tenant entries into canonical tenants. Totality: the
// output always has the same length as the input and every canonical field
// holds a value.
func (a *Adapter) Tenants(raw []map[string]any) []CanonicalTenant {
	out := make([]CanonicalTenant, len(raw))
	for i, r := range raw {
		out[i] = a.tenant(r)
	}
	return out
}

func (a *Adapter) tenant(raw map[string]any) CanonicalTenant {
	t := CanonicalTenant{
		Name:               stringField(raw, tenantNameAliases, defaultTenantName),
		Industry:           stringField(raw, tenantIndustryAliases, defaultIndustry),
		CreditRating:       stringField(raw, tenantRatingAliases, defaultCreditRating),
		SquareFootage:      floatField(raw, tenantSFAliases, 0),
		RentPSF:            floatField(raw, tenantRentPSFAliases, 0),
		AnnualSales:        floatField(raw, tenantSalesAliases, 0),
		RenewalProbability: floatField(raw, tenantRenewalAliases, defaultRenewalProb),
		PercentageRentRate: floatField(raw, tenantPctRentAliases, 0),
		HasCoTenancyClause: boolField(raw, tenantCoTenAliases, false),
		RequiredCoTenant:   stringField(raw, tenantReqCoAliases, ""),
		IsAnchor:           boolField(raw, tenantAnchorAliases, false),
		LeaseStart:         a.timeField(raw, tenantStartAliases, a.now),
		LeaseExpiry:        a.timeField(raw, tenantExpiryAliases, a.now.AddDate(defaultLeaseTermYear, 0, 0)),
	}

	// Annual rent: explicit value wins, else derived from PSF x SF.
	t.AnnualRent = floatField(raw, tenantRentAliases, t.RentPSF*t.SquareFootage)
	if t.RentPSF == 0 && t.AnnualRent > 0 && t.SquareFootage > 0 {
		t.RentPSF = t.AnnualRent / t.SquareFootage
	}

	// A tenant naming a required co-tenant has a co-tenancy clause even if
	// the flag itself was not supplied.
	if t.RequiredCoTenant != "" {
		t.HasCoTenancyClause = true
	}
	return t
}

// Units converts raw unit-mix entries into canonical units.
func (a *Adapter) Units(raw []map[string]any) []CanonicalUnit {
	out := make([]CanonicalUnit, len(raw))
	for i, r := range raw {
		u := CanonicalUnit{
			UnitType:      stringField(r, unitTypeAliases, defaultUnitType),
			Count:         intField(r, unitCountAliases, 1),
			SquareFootage: floatField(r, unitSFAliases, 0),
			CurrentRent:   floatField(r, unitCurrentAliases, 0),
			Occupied:      boolField(r, unitOccupiedAliases, true),
			Renovated:     boolField(r, unitRenoAliases, false),
		}
		u.MarketRent = floatField(r, unitMarketAliases, u.CurrentRent)
		if u.Count < 1 {
			u.Count = 1
		}
		out[i] = u
	}
	return out
}

// BuildingSpec converts a raw building-spec map into a canonical spec. A nil
// map yields the all-defaults spec.
func (a *Adapter) BuildingSpec(raw map[string]any) CanonicalBuildingSpec {
	if raw == nil {
		raw = map[string]any{}
	}
	return CanonicalBuildingSpec{
		IndustrialType:    stringField(raw, specTypeAliases, defaultIndustrial),
		ClearHeightFt:     floatField(raw, specClearAliases, 0),
		DockDoors:         intField(raw, specDockAliases, 0),
		DriveInDoors:      intField(raw, specDriveInAliases, 0),
		TruckCourtDepthFt: floatField(raw, specCourtAliases, 0),
		PowerCapacityKW:   floatField(raw, specPowerAliases, 0),
		ColumnSpacingFt:   floatField(raw, specColumnAliases, 0),
		SquareFootage:     floatField(raw, specSFAliases, 0),
		SprinklerSystem:   stringField(raw, specSprinklerAliases, defaultSprinkler),
		RailServed:        boolField(raw, specRailAliases, false),
		CrossDock:         boolField(raw, specCrossAliases, false),
		TrailerParking:    boolField(raw, specTrailerAliases, false),
	}
}

func stringField(raw map[string]any, aliases []string, def string) string {
	if v, ok := firstValue(raw, aliases); ok {
		if s, ok := toString(v); ok {
			return s
		}
	}
	return def
}

func floatField(raw map[string]any, aliases []string, def float64) float64 {
	if v, ok := firstValue(raw, aliases); ok {
		if f, ok := toFloat(v); ok && f >= 0 {
			return f
		}
	}
	return def
}

func intField(raw map[string]any, aliases []string, def int) int {
	if v, ok := firstValue(raw, aliases); ok {
		if n, ok := toInt(v); ok && n >= 0 {
			return n
		}
	}
	return def
}

func boolField(raw map[string]any, aliases []string, def bool) bool {
	if v, ok := firstValue(raw, aliases); ok {
		if b, ok := toBool(v); ok {
			return b
		}
	}
	return def
}

func (a *Adapter) timeField(raw map[string]any, aliases []string, def time.Time) time.Time {
	if v, ok := firstValue(raw, aliases); ok {
		if t, ok := toTime(v); ok {
			return t
		}
	}
	return def
}
