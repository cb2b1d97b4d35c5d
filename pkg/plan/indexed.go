package plan

import (
	"sort"

	"github.com/truecost/truecost/pkg/resolve"
	"github.com/truecost/truecost/pkg/types"
)

// PriceAnchor is a disclosed average-price point from an EFL: the all-in
// average cents/kWh at a reference usage level (conventionally 500, 1000 and
// 2000 kWh).
type PriceAnchor struct {
	UsageKwh    float64
	CentsPerKwh float64
}

// anchorFields are the aliases under which upstream records EFL average-price
// disclosures.
var anchorFields = []string{"avgPriceAnchors", "averagePrices", "eflAveragePrices"}

// ExtractIndexedAnchors parses whatever average-price anchor points the blob
// discloses, sorted by usage. Malformed entries are skipped rather than
// failing the whole extraction: anchors are optional on the indexed path and
// their absence just forecloses the approximation opt-in.
func ExtractIndexedAnchors(rs types.RateStructure) []PriceAnchor {
	var raw []any
	for _, f := range anchorFields {
		if s, ok := rs.Slice(f); ok {
			raw = s
			break
		}
	}

	var anchors []PriceAnchor
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		am := types.RateStructure(m)
		usage, ok := resolve.ResolveUniqueFloat(
			am.Raw("usageKwh", "kwh", "referenceKwh"),
			resolve.ThresholdKwh,
		)
		if !ok {
			continue
		}
		cents, ok := resolve.ResolveUniqueFloat(
			am.Raw("centsPerKwh", "avgCentsPerKwh", "averagePriceCents"),
			resolve.EnergyCentsPerKwh,
		)
		if !ok {
			continue
		}
		anchors = append(anchors, PriceAnchor{UsageKwh: usage, CentsPerKwh: cents})
	}

	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].UsageKwh < anchors[j].UsageKwh
	})
	return anchors
}
