// Package engine computes the true-cost estimate for a classified rate
// structure. It is a pure, synchronous function of its inputs: no I/O, no
// shared state, safe to invoke concurrently. Business-data problems surface
// as a Status/Reason on the result, never as an error.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/truecost/truecost/pkg/log"
	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// Input is one estimate request. Plan, AnnualKwh, Tdsp and Months are always
// required; Usage is required only by the bucketed paths and they fail closed
// without it.
type Input struct {
	Plan      types.RateStructure
	AnnualKwh float64
	Usage     types.UsageBucketsByMonth
	Tdsp      types.TdspRatesApplied
	Months    int

	// AllowIndexedApproximation opts in to the LOW-confidence anchor-based
	// estimate for indexed/variable plans.
	AllowIndexedApproximation bool

	// AnchorSelector overrides how an anchor price is chosen for the usage
	// level. Nil selects the default (exact match, interpolation, then
	// nearest endpoint).
	AnchorSelector AnchorSelector
}

// Estimate classifies the plan and computes a cost breakdown. Identical
// inputs always produce identical output.
func Estimate(ctx context.Context, in Input) types.TrueCostEstimate {
	if in.AnnualKwh <= 0 {
		return notImplemented(types.ReasonInvalidAnnualKwh)
	}
	if in.Months < 1 || in.Months > 12 {
		return notImplemented(types.ReasonInvalidMonths)
	}

	c := plan.Classify(ctx, in.Plan)
	log.Ctx(ctx).DebugContext(ctx, "estimating plan cost",
		slog.String("kind", c.Kind.String()),
		slog.Float64("annualKwh", in.AnnualKwh),
		slog.Int("months", in.Months))

	credits, err := plan.ExtractBillCredits(in.Plan)
	if err != nil {
		return notComputable(fmt.Sprintf("%s: %s", types.ReasonUnsupportedStructure, err), nil)
	}
	minRule, err := plan.ExtractMinimumUsageRule(in.Plan)
	if err != nil {
		return notComputable(fmt.Sprintf("%s: %s", types.ReasonUnsupportedStructure, err), nil)
	}

	switch c.Kind {
	case plan.KindFixedRate:
		return estimateFixed(in, c, credits, minRule)
	case plan.KindTouDayNight, plan.KindTouWeekdayWeekend, plan.KindTouWindowed:
		return estimateTou(in, c, credits, minRule)
	case plan.KindTieredBlocks:
		return estimateTiered(in, c, credits, minRule)
	case plan.KindIndexedVariable:
		return estimateIndexed(in, c)
	default:
		// The ambiguous-rate reason only applies when the fixed-rate aliases
		// were what classification actually tripped on; a structural failure
		// in another kind keeps the classifier's detail even if the blob also
		// carries a convenience rate field.
		if !plan.HasPricingSignal(in.Plan) && plan.HasFixedRateField(in.Plan) {
			return notComputable(types.ReasonAmbiguousEnergyRate, nil)
		}
		reason := types.ReasonUnsupportedStructure
		if c.Detail != "" {
			reason = fmt.Sprintf("%s: %s", reason, c.Detail)
		}
		return notComputable(reason, nil)
	}
}

// resolveMonthlyCharge resolves the REP fixed monthly charge for any
// computable branch. A present-but-ambiguous charge fails closed; an absent
// charge is zero with a note.
func resolveMonthlyCharge(rs types.RateStructure) (float64, []string, *types.TrueCostEstimate) {
	charge, field, ok := plan.ExtractRepFixedMonthlyCharge(rs)
	if ok {
		return charge, []string{fmt.Sprintf("rep fixed monthly charge $%.2f from %s", charge, field)}, nil
	}
	if plan.HasMonthlyChargeField(rs) {
		e := notComputable(types.ReasonAmbiguousMonthlyCharge, nil)
		return 0, nil, &e
	}
	return 0, []string{"rep fixed monthly charge assumed $0.00 (not disclosed)"}, nil
}

// trailingMonths selects the most recent Months month keys. Every bucketed
// path requires exactly that much history.
func trailingMonths(in Input) ([]string, *types.TrueCostEstimate) {
	if len(in.Usage) == 0 {
		e := notComputable(types.ReasonMissingUsageBuckets, nil)
		return nil, &e
	}
	months, ok := in.Usage.TrailingMonths(in.Months)
	if !ok {
		e := notComputable(fmt.Sprintf("%s: need %d months, have %d",
			types.ReasonInsufficientHistory, in.Months, len(months)), nil)
		return nil, &e
	}
	return months, nil
}
