package engine

import (
	"fmt"

	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// estimateFixed prices a flat-rate plan. Without modifiers this is the fast
// path: a closed-form annual formula that needs no usage buckets and is the
// only path reaching HIGH confidence. With modifiers present the plan must be
// priced month by month from usage totals.
func estimateFixed(in Input, c plan.Classified, credits []plan.CreditRule, minRule *plan.MinimumRule) types.TrueCostEstimate {
	repFixed, notes, fail := resolveMonthlyCharge(in.Plan)
	if fail != nil {
		return *fail
	}
	notes = append([]string{
		"classified as fixed rate",
		fmt.Sprintf("rep energy rate %.4f¢/kWh from %s", c.FixedRateCents, c.FixedRateField),
	}, notes...)

	if len(credits) == 0 && minRule == nil {
		acc := monthAccum{
			repEnergyCents:    energyCents(in.AnnualKwh, c.FixedRateCents),
			repFixedCents:     int64(in.Months) * centsFromDollars(repFixed),
			tdspDeliveryCents: energyCents(in.AnnualKwh, in.Tdsp.PerKwhDeliveryChargeCents),
			tdspFixedCents:    int64(in.Months) * centsFromDollars(in.Tdsp.MonthlyCustomerChargeDollars),
		}
		notes = append(notes,
			"no bill credits or minimum-usage rule; priced from annual kWh",
			"tdsp delivery and customer charge included")
		return assembleMonths(plan.KindFixedRate, []monthAccum{acc}, in.Months, types.ConfidenceHigh, notes)
	}

	// A structurally present modifier without monthly usage is a hard
	// failure, never a silent skip.
	months, fail := trailingMonths(in)
	if fail != nil {
		return *fail
	}

	accums := make([]monthAccum, 0, len(months))
	var missing []string
	totalKey := types.TotalBucketKey(types.DayTypeAll)
	for _, m := range months {
		kwh, ok := in.Usage.Kwh(m, totalKey)
		if !ok {
			missing = append(missing, m+"/"+totalKey.String())
			continue
		}
		acc := monthAccum{
			month:             m,
			totalKwh:          kwh,
			repEnergyCents:    energyCents(kwh, c.FixedRateCents),
			repFixedCents:     centsFromDollars(repFixed),
			tdspDeliveryCents: energyCents(kwh, in.Tdsp.PerKwhDeliveryChargeCents),
			tdspFixedCents:    centsFromDollars(in.Tdsp.MonthlyCustomerChargeDollars),
		}
		acc.applyModifiers(credits, minRule)
		accums = append(accums, acc)
	}
	if len(missing) > 0 {
		return missingBuckets(missing)
	}

	notes = append(notes, modifierNotes(credits, minRule)...)
	return assembleMonths(plan.KindFixedRate, accums, in.Months, types.ConfidenceMedium, notes)
}
