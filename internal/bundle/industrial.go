package bundle

import (
	"strings"

	"github.com/sells-group/deal-analyzer/internal/assetscore"
)

func registerIndustrial(r *Registry) {
	r.Register(Package{
		ID:          "industrial-functionality",
		Description: "building functionality composite with classification",
		run:         industrialFunctionality,
	})
	r.Register(Package{
		ID:          "industrial-clear-height",
		Description: "clear height against type targets",
		run:         industrialClearHeight,
	})
	r.Register(Package{
		ID:          "industrial-loading",
		Description: "dock door density and truck court adequacy",
		run:         industrialLoading,
	})
	r.Register(Package{
		ID:          "industrial-power",
		Description: "power capacity per SF against type requirements",
		run:         industrialPower,
	})
	r.Register(Package{
		ID:          "industrial-last-mile",
		Description: "last-mile distribution suitability",
		run:         industrialLastMile,
	})
	r.Register(Package{
		ID:          "industrial-cold-chain",
		Description: "cold storage suitability under cold-chain targets",
		run:         industrialColdChain,
	})
	r.Register(Package{
		ID:          "industrial-tenant-quality",
		Description: "rent roll credit and term quality",
		run:         industrialTenantQuality,
	})
	r.Register(Package{
		ID:          "industrial-site-coverage",
		Description: "building footprint as a share of the site",
		run:         industrialSiteCoverage,
	})
}

func hasIndustrialSpec(rc *runCtx) bool {
	spec := rc.buildingSpec()
	return spec.SquareFootage > 0 && spec.ClearHeightFt > 0
}

func industrialFunctionality(rc *runCtx) *Result {
	if !hasIndustrialSpec(rc) {
		return nil
	}
	res := rc.result()
	res.put("functionality", assetscore.Functionality(rc.buildingSpec()))
	return res
}

func industrialClearHeight(rc *runCtx) *Result {
	spec := rc.buildingSpec()
	if spec.ClearHeightFt <= 0 {
		return nil
	}
	fr := assetscore.Functionality(spec)
	res := rc.result()
	res.put("clearHeightFt", spec.ClearHeightFt)
	res.put("score", fr.Components["clearHeight"])
	res.put("industrialType", fr.IndustrialType)
	return res
}

func industrialLoading(rc *runCtx) *Result {
	spec := rc.buildingSpec()
	if spec.SquareFootage <= 0 || spec.DockDoors <= 0 {
		return nil
	}
	fr := assetscore.Functionality(spec)
	res := rc.result()
	res.put("dockDoors", spec.DockDoors)
	res.put("docksPer10kSF", round2(float64(spec.DockDoors)/(spec.SquareFootage/10_000)))
	res.put("truckCourtDepthFt", spec.TruckCourtDepthFt)
	res.put("score", fr.Components["loading"])
	return res
}

func industrialPower(rc *runCtx) *Result {
	spec := rc.buildingSpec()
	if spec.SquareFootage <= 0 || spec.PowerCapacityKW <= 0 {
		return nil
	}
	fr := assetscore.Functionality(spec)
	res := rc.result()
	res.put("powerCapacityKW", spec.PowerCapacityKW)
	res.put("wattsPerSF", round2(spec.PowerCapacityKW*1000/spec.SquareFootage))
	res.put("score", fr.Components["power"])
	return res
}

func industrialLastMile(rc *runCtx) *Result {
	f := rc.facts
	spec := rc.buildingSpec()
	if spec.SquareFootage <= 0 || (f.DistToHighwayMi <= 0 && f.TradeAreaPopulation <= 0) {
		return nil
	}
	res := rc.result()

	// Suitability for last-mile use regardless of the building's stated
	// type: proximity, rooftops, and loading flexibility.
	score := 50.0
	var drivers []string
	switch {
	case f.DistToHighwayMi > 0 && f.DistToHighwayMi <= 5:
		score += 20
		drivers = append(drivers, "within 5 miles of highway access")
	case f.DistToHighwayMi > 0 && f.DistToHighwayMi <= 15:
		score += 5
	case f.DistToHighwayMi > 25:
		score -= 15
		drivers = append(drivers, "remote from highway access")
	}
	if f.TradeAreaPopulation >= 250_000 {
		score += 15
		drivers = append(drivers, "dense delivery population")
	}
	if spec.TrailerParking {
		score += 10
		drivers = append(drivers, "trailer parking for fleet staging")
	}
	if spec.DriveInDoors > 0 {
		score += 5
	}
	switch {
	case score > 100:
		score = 100
	case score < 0:
		score = 0
	}

	res.put("score", round2(score))
	if f.DistToHighwayMi > 0 {
		res.put("distToHighwayMi", f.DistToHighwayMi)
	}
	if len(drivers) > 0 {
		res.put("drivers", drivers)
	}
	return res
}

func industrialColdChain(rc *runCtx) *Result {
	spec := rc.buildingSpec()
	if spec.SquareFootage <= 0 || spec.ClearHeightFt <= 0 {
		return nil
	}
	// Measure against cold storage targets whatever the stated type; the
	// question is conversion or continuation potential.
	cold := spec
	cold.IndustrialType = "cold_storage"
	fr := assetscore.Functionality(cold)

	res := rc.result()
	wattsPerSF := spec.PowerCapacityKW * 1000 / spec.SquareFootage
	suitable := fr.Composite >= 70 && spec.ClearHeightFt >= 28 && wattsPerSF >= 4
	res.put("composite", fr.Composite)
	res.put("wattsPerSF", round2(wattsPerSF))
	res.put("suitable", suitable)
	res.put("alreadyColdStorage", normalizedType(rc.facts.IndustrialType) == "cold_storage")
	return res
}

func normalizedType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t = strings.ReplaceAll(t, " ", "_")
	return strings.ReplaceAll(t, "-", "_")
}

func industrialTenantQuality(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	walt := assetscore.WALT(tenants, rc.now)
	score, risk := assetscore.TenantQuality(tenants, walt)

	res := rc.result()
	res.put("score", score)
	res.put("risk", risk)
	res.put("waltYears", walt)
	res.put("tenantCount", len(tenants))
	return res
}

func industrialSiteCoverage(rc *runCtx) *Result {
	f := rc.facts
	coverage := f.SiteCoveragePct
	if coverage <= 0 && f.LandAreaAcres > 0 && f.LeasableSF() > 0 {
		coverage = f.LeasableSF() / (f.LandAreaAcres * 43_560) * 100
	}
	if coverage <= 0 {
		return nil
	}
	res := rc.result()
	res.put("siteCoveragePct", round2(coverage))
	switch {
	case coverage <= 35:
		res.put("classification", "low coverage")
		res.put("note", "excess land supports trailer storage or future expansion")
	case coverage <= 50:
		res.put("classification", "typical")
	default:
		res.put("classification", "constrained")
		res.put("note", "limited yard depth for maneuvering and staging")
	}
	return res
}
