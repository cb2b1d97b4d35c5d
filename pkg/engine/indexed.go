package engine

import (
	"fmt"

	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// AnchorSelector chooses or interpolates an all-in average price from the
// disclosed anchor points for the given usage. It returns the chosen
// cents/kWh and a method name surfaced in the audit trail.
type AnchorSelector func(anchors []plan.PriceAnchor, annualKwh float64, months int) (float64, string, error)

// estimateIndexed handles indexed/variable plans. True future cost is
// unknowable, so the default is NOT_COMPUTABLE; the opt-in path produces a
// LOW-confidence APPROXIMATE estimate from the EFL average-price anchors.
func estimateIndexed(in Input, c plan.Classified) types.TrueCostEstimate {
	if !in.AllowIndexedApproximation {
		return notComputable(types.ReasonIndexedPricing, nil)
	}
	if len(c.Anchors) == 0 {
		return notComputable(
			fmt.Sprintf("%s: no average-price anchors disclosed", types.ReasonIndexedPricing), nil)
	}

	selector := in.AnchorSelector
	if selector == nil {
		selector = DefaultAnchorSelector
	}
	cents, method, err := selector(c.Anchors, in.AnnualKwh, in.Months)
	if err != nil {
		return notComputable(fmt.Sprintf("%s: %s", types.ReasonIndexedPricing, err), nil)
	}

	annualCents := energyCents(in.AnnualKwh, cents)

	anchorsKwh := make([]float64, 0, len(c.Anchors))
	anchorsCents := make([]float64, 0, len(c.Anchors))
	for _, a := range c.Anchors {
		anchorsKwh = append(anchorsKwh, a.UsageKwh)
		anchorsCents = append(anchorsCents, a.CentsPerKwh)
	}

	est := types.TrueCostEstimate{
		Status:             types.StatusApproximate,
		Confidence:         types.ConfidenceLow,
		AnnualCostDollars:  dollarsFromCents(annualCents),
		MonthlyCostDollars: dollarsFromCents(divideCents(annualCents, in.Months)),
		Notes: []string{
			"classified as indexed/variable; approximation opt-in enabled",
			fmt.Sprintf("anchor method %s chose %.4f¢/kWh for %.0f kWh/yr", method, cents, in.AnnualKwh),
			fmt.Sprintf("anchors (kWh→¢/kWh): %v → %v", anchorsKwh, anchorsCents),
			"anchor prices are all-in; rep/tdsp split and separate credits not available",
		},
		Debug: &types.Debug{
			Version: types.CurrentDebugVersion,
			Kind:    c.Kind.String(),
			Anchor: &types.AnchorDebug{
				Method:       method,
				AnchorsKwh:   anchorsKwh,
				AnchorsCents: anchorsCents,
				ChosenCents:  cents,
			},
		},
	}
	// the whole amount is reported as energy since the anchors blend
	// supply and delivery
	est.Breakdown.EnergyDollars = est.AnnualCostDollars
	est.Breakdown.Rep.EnergyDollars = est.AnnualCostDollars
	est.Breakdown.TotalDollars = est.AnnualCostDollars
	return est
}

// DefaultAnchorSelector compares the average monthly usage against the anchor
// reference levels: exact match first, then linear interpolation between the
// bracketing anchors, then the nearest endpoint.
func DefaultAnchorSelector(anchors []plan.PriceAnchor, annualKwh float64, months int) (float64, string, error) {
	if len(anchors) == 0 {
		return 0, "", fmt.Errorf("no anchors")
	}
	monthlyKwh := annualKwh / float64(months)

	for _, a := range anchors {
		if a.UsageKwh == monthlyKwh {
			return a.CentsPerKwh, "exact_anchor", nil
		}
	}

	// anchors are sorted by usage
	if monthlyKwh < anchors[0].UsageKwh {
		return anchors[0].CentsPerKwh, "nearest_anchor", nil
	}
	last := anchors[len(anchors)-1]
	if monthlyKwh > last.UsageKwh {
		return last.CentsPerKwh, "nearest_anchor", nil
	}
	for i := 1; i < len(anchors); i++ {
		lo, hi := anchors[i-1], anchors[i]
		if monthlyKwh <= hi.UsageKwh {
			frac := (monthlyKwh - lo.UsageKwh) / (hi.UsageKwh - lo.UsageKwh)
			return lo.CentsPerKwh + frac*(hi.CentsPerKwh-lo.CentsPerKwh), "interpolated", nil
		}
	}
	return last.CentsPerKwh, "nearest_anchor", nil
}
