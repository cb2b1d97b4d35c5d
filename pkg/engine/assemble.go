package engine

import (
	"fmt"
	"strings"

	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// maxNamedKeys caps how many offending bucket keys a reason enumerates
// before the ellipsis.
const maxNamedKeys = 12

func notImplemented(reason string) types.TrueCostEstimate {
	return types.TrueCostEstimate{
		Status:     types.StatusNotImplemented,
		Reason:     reason,
		Confidence: types.ConfidenceLow,
	}
}

func notComputable(reason string, notes []string) types.TrueCostEstimate {
	return types.TrueCostEstimate{
		Status:     types.StatusNotComputable,
		Reason:     reason,
		Confidence: types.ConfidenceLow,
		Notes:      notes,
	}
}

// missingBuckets builds the NOT_COMPUTABLE result for absent bucket keys,
// naming the first 12 and then an ellipsis.
func missingBuckets(keys []string) types.TrueCostEstimate {
	named := keys
	ellipsis := ""
	if len(named) > maxNamedKeys {
		named = named[:maxNamedKeys]
		ellipsis = ", …"
	}
	return notComputable(
		fmt.Sprintf("%s: %s%s", types.ReasonMissingUsageBuckets, strings.Join(named, ", "), ellipsis),
		nil,
	)
}

// assembleMonths folds the per-month accumulators into the final estimate.
// Annual dollars are the sum of month totals; monthly dollars divide the
// annual cents across the requested months.
func assembleMonths(
	kind plan.Kind,
	months []monthAccum,
	monthsCount int,
	confidence types.Confidence,
	notes []string,
) types.TrueCostEstimate {
	var b types.CostBreakdown
	var annualCents int64
	var repEnergy, repFixed, tdspDelivery, tdspFixed, credit, minFee, minTopUp int64

	debug := &types.Debug{
		Version: types.CurrentDebugVersion,
		Kind:    kind.String(),
		Months:  make([]types.MonthDebug, 0, len(months)),
	}
	for _, m := range months {
		repEnergy += m.repEnergyCents
		repFixed += m.repFixedCents
		tdspDelivery += m.tdspDeliveryCents
		tdspFixed += m.tdspFixedCents
		credit += m.creditCents
		minFee += m.minFeeCents
		minTopUp += m.minTopUpCents
		annualCents += m.totalCents()
		debug.Months = append(debug.Months, m.debug())
	}

	b.Rep = types.RepBreakdown{
		EnergyDollars:       dollarsFromCents(repEnergy),
		FixedMonthlyDollars: dollarsFromCents(repFixed),
	}
	b.Tdsp = types.TdspBreakdown{
		DeliveryDollars:       dollarsFromCents(tdspDelivery),
		CustomerChargeDollars: dollarsFromCents(tdspFixed),
	}
	b.EnergyDollars = b.Rep.EnergyDollars
	b.FixedDollars = dollarsFromCents(repFixed + tdspFixed)
	b.DeliveryDollars = b.Tdsp.DeliveryDollars
	b.CreditsDollars = dollarsFromCents(credit)
	b.MinimumFeeDollars = dollarsFromCents(minFee)
	b.MinimumTopUpDollars = dollarsFromCents(minTopUp)
	b.TotalDollars = dollarsFromCents(annualCents)

	return types.TrueCostEstimate{
		Status:             types.StatusOK,
		Confidence:         confidence,
		AnnualCostDollars:  dollarsFromCents(annualCents),
		MonthlyCostDollars: dollarsFromCents(divideCents(annualCents, monthsCount)),
		Breakdown:          b,
		Notes:              notes,
		Debug:              debug,
	}
}

// modifierNotes records how the optional modifiers were treated.
func modifierNotes(credits []plan.CreditRule, minRule *plan.MinimumRule) []string {
	var notes []string
	if len(credits) > 0 {
		notes = append(notes, fmt.Sprintf("applied %d usage-threshold bill credit rule(s)", len(credits)))
	} else {
		notes = append(notes, "no bill credits")
	}
	switch {
	case minRule == nil:
		notes = append(notes, "no minimum-usage rule")
	case minRule.Kind == plan.MinimumKindFee:
		notes = append(notes, fmt.Sprintf("minimum-usage fee $%.2f below %.0f kWh", minRule.FeeDollars, minRule.ThresholdKwh))
	default:
		notes = append(notes, fmt.Sprintf("minimum monthly charge floor $%.2f", minRule.FloorDollars))
	}
	return notes
}
