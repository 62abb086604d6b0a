package bundle

import (
	"strings"

	"github.com/sells-group/deal-analyzer/internal/assetscore"
)

func registerMixedUse(r *Registry) {
	r.Register(Package{
		ID:          "mixeduse-synergy",
		Description: "component synergy from massing, pairing, and parking",
		run:         mixedUseSynergy,
	})
	r.Register(Package{
		ID:          "mixeduse-balance",
		Description: "SF and income balance across components",
		run:         mixedUseBalance,
	})
	r.Register(Package{
		ID:          "mixeduse-cross-traffic",
		Description: "captive customer base the retail component draws on",
		run:         mixedUseCrossTraffic,
	})
}

func mixedUseSynergy(rc *runCtx) *Result {
	f := rc.facts
	if len(f.Components) == 0 {
		return nil
	}
	res := rc.result()
	res.put("synergy", assetscore.Synergy(f.Components, f.SharedParking))
	return res
}

func mixedUseBalance(rc *runCtx) *Result {
	f := rc.facts
	if len(f.Components) == 0 {
		return nil
	}
	res := rc.result()
	res.put("balance", assetscore.Balance(f.Components))
	return res
}

// On-site population density assumptions for cross-traffic estimation.
const (
	sfPerOfficeWorker = 250.0
	sfPerResident     = 900.0
)

func mixedUseCrossTraffic(rc *runCtx) *Result {
	f := rc.facts
	if len(f.Components) < 2 {
		return nil
	}

	var retailSF, officeSF, residentialSF float64
	for _, c := range f.Components {
		switch strings.ToLower(c.Use) {
		case "retail":
			retailSF += c.SquareFootage
		case "office":
			officeSF += c.SquareFootage
		case "residential", "multifamily":
			residentialSF += c.SquareFootage
		}
	}
	if retailSF <= 0 || (officeSF <= 0 && residentialSF <= 0) {
		return nil
	}

	res := rc.result()
	workers := officeSF / sfPerOfficeWorker
	residents := residentialSF / sfPerResident
	res.put("retailSF", retailSF)
	res.put("onSiteWorkers", round2(workers))
	res.put("onSiteResidents", round2(residents))
	res.put("captiveCustomers", round2(workers+residents))
	res.put("captivePerRetailKSF", round2((workers+residents)/(retailSF/1000)))
	res.assume("sfPerOfficeWorker", sfPerOfficeWorker)
	res.assume("sfPerResident", sfPerResident)
	return res
}
