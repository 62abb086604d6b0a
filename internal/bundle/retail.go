package bundle

import (
	"sort"

	"github.com/sells-group/deal-analyzer/internal/assetscore"
)

func registerRetail(r *Registry) {
	r.Register(Package{
		ID:          "retail-cotenancy",
		Description: "co-tenancy clause exposure across the rent roll",
		run:         retailCoTenancy,
	})
	r.Register(Package{
		ID:          "retail-sales-performance",
		Description: "tenant health from sales per SF and occupancy cost",
		run:         retailSalesPerformance,
	})
	r.Register(Package{
		ID:          "retail-anchor-health",
		Description: "anchor tenant condition, share of center, and expiry",
		run:         retailAnchorHealth,
	})
	r.Register(Package{
		ID:          "retail-occupancy-cost",
		Description: "occupancy cost ratio per tenant",
		run:         retailOccupancyCost,
	})
	r.Register(Package{
		ID:          "retail-tenant-mix",
		Description: "industry mix of the rent roll with concentration flag",
		run:         retailTenantMix,
	})
	r.Register(Package{
		ID:          "retail-percentage-rent",
		Description: "percentage rent potential from reported sales",
		run:         retailPercentageRent,
	})
	r.Register(Package{
		ID:          "retail-expiration-wave",
		Description: "near-term lease expiration concentration",
		run:         retailExpirationWave,
	})
	r.Register(Package{
		ID:          "retail-trade-area",
		Description: "trade area demographics and traffic scoring",
		run:         retailTradeArea,
	})
}

func retailCoTenancy(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("coTenancy", assetscore.CoTenancy(tenants, rc.now))
	return res
}

func retailSalesPerformance(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("tenantHealth", assetscore.TenantHealth(tenants, rc.now))
	return res
}

func retailAnchorHealth(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	res := rc.result()
	res.put("anchors", assetscore.Anchors(tenants, rc.now))
	return res
}

func retailOccupancyCost(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}

	type tenantOCR struct {
		TenantName       string  `json:"tenantName"`
		OccupancyCostPct float64 `json:"occupancyCostPct"`
		AnnualRent       float64 `json:"annualRent"`
		AnnualSales      float64 `json:"annualSales"`
	}
	var rows []tenantOCR
	var rentSum, salesSum float64
	for i := range tenants {
		t := &tenants[i]
		if t.AnnualSales <= 0 {
			continue
		}
		rows = append(rows, tenantOCR{
			TenantName:       t.Name,
			OccupancyCostPct: round2(t.AnnualRent / t.AnnualSales * 100),
			AnnualRent:       t.AnnualRent,
			AnnualSales:      t.AnnualSales,
		})
		rentSum += t.AnnualRent
		salesSum += t.AnnualSales
	}
	if len(rows) == 0 {
		return nil
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].OccupancyCostPct > rows[j].OccupancyCostPct
	})

	res := rc.result()
	res.put("tenants", rows)
	res.put("portfolioOCRPct", round2(rentSum/salesSum*100))
	return res
}

func retailTenantMix(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}

	type industryShare struct {
		Industry   string  `json:"industry"`
		SF         float64 `json:"sf"`
		PctOfGLA   float64 `json:"pctOfGLA"`
		PctOfRent  float64 `json:"pctOfRent"`
	}
	bySF := map[string]*industryShare{}
	var order []string
	var totalSF, totalRent float64
	for i := range tenants {
		t := &tenants[i]
		s, ok := bySF[t.Industry]
		if !ok {
			s = &industryShare{Industry: t.Industry}
			bySF[t.Industry] = s
			order = append(order, t.Industry)
		}
		s.SF += t.SquareFootage
		s.PctOfRent += t.AnnualRent
		totalSF += t.SquareFootage
		totalRent += t.AnnualRent
	}

	res := rc.result()
	sort.Strings(order)
	var shares []industryShare
	var dominant string
	for _, ind := range order {
		s := bySF[ind]
		if totalSF > 0 {
			s.PctOfGLA = round2(s.SF / totalSF * 100)
		}
		if totalRent > 0 {
			s.PctOfRent = round2(s.PctOfRent / totalRent * 100)
		}
		if s.PctOfGLA > 40 {
			dominant = ind
		}
		shares = append(shares, *s)
	}
	res.put("industries", shares)
	res.put("concentrated", dominant != "")
	if dominant != "" {
		res.put("dominantIndustry", dominant)
	}
	return res
}

func retailPercentageRent(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}

	type overage struct {
		TenantName    string  `json:"tenantName"`
		RatePct       float64 `json:"ratePct"`
		AnnualSales   float64 `json:"annualSales"`
		PotentialRent float64 `json:"potentialRent"`
		OverBase      float64 `json:"overBase"`
	}
	var rows []overage
	var total float64
	for i := range tenants {
		t := &tenants[i]
		if t.PercentageRentRate <= 0 || t.AnnualSales <= 0 {
			continue
		}
		potential := t.AnnualSales * t.PercentageRentRate / 100
		over := potential - t.AnnualRent
		if over < 0 {
			over = 0
		}
		rows = append(rows, overage{
			TenantName:    t.Name,
			RatePct:       t.PercentageRentRate,
			AnnualSales:   t.AnnualSales,
			PotentialRent: round2(potential),
			OverBase:      round2(over),
		})
		total += over
	}
	if len(rows) == 0 {
		return nil
	}

	res := rc.result()
	res.put("tenants", rows)
	res.put("totalOverageRent", round2(total))
	return res
}

func retailExpirationWave(rc *runCtx) *Result {
	tenants := rc.tenants()
	if len(tenants) == 0 {
		return nil
	}
	buckets := assetscore.RolloverSchedule(tenants, rc.now)

	res := rc.result()
	res.put("rollover", buckets)
	// A wave is more than 30% of rent rolling inside three years.
	nearTerm := buckets[0].PctOfRent + buckets[1].PctOfRent
	res.put("nearTermRentPct", round2(nearTerm))
	res.put("expirationWave", nearTerm > 30)
	return res
}

func retailTradeArea(rc *runCtx) *Result {
	f := rc.facts
	if f.TradeAreaPopulation <= 0 && f.TrafficCount <= 0 {
		return nil
	}
	res := rc.result()

	score := 50.0
	var drivers []string
	switch {
	case f.TradeAreaPopulation >= 50_000:
		score += 15
		drivers = append(drivers, "trade area population above 50,000")
	case f.TradeAreaPopulation >= 25_000:
		score += 5
	}
	if f.TrafficCount >= 25_000 {
		score += 10
		drivers = append(drivers, "traffic count above 25,000 vehicles/day")
	}
	income := rc.householdIncome(res)
	if income >= 75_000 {
		score += 10
		drivers = append(drivers, "median household income above $75,000")
	}
	switch {
	case f.PopulationGrowthRate >= 1:
		score += 10
		drivers = append(drivers, "population growing above 1%/year")
	case f.PopulationGrowthRate < 0:
		score -= 10
		drivers = append(drivers, "shrinking trade area population")
	}
	if score > 100 {
		score = 100
	}

	res.put("score", round2(score))
	res.put("tradeAreaPopulation", f.TradeAreaPopulation)
	res.put("trafficCount", f.TrafficCount)
	res.put("medianHouseholdIncome", round2(income))
	if len(drivers) > 0 {
		res.put("drivers", drivers)
	}
	// Pad sites and anchor GLA round out the site picture when present.
	if f.PadSites > 0 {
		res.put("padSites", f.PadSites)
	}
	if f.AnchorGLA > 0 && f.InlineGLA > 0 {
		res.put("anchorToInlineRatio", round2(f.AnchorGLA/f.InlineGLA))
	}
	return res
}
