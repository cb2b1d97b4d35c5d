package engine

import (
	"fmt"

	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// estimateTiered prices a kWh-block schedule. Tier thresholds reset every
// billing period, so annual-only usage is rejected outright: each trailing
// month must carry its own total.
func estimateTiered(in Input, c plan.Classified, credits []plan.CreditRule, minRule *plan.MinimumRule) types.TrueCostEstimate {
	if len(in.Usage) == 0 {
		return notComputable(types.ReasonTieredNeedsMonthly, nil)
	}

	repFixed, notes, fail := resolveMonthlyCharge(in.Plan)
	if fail != nil {
		return *fail
	}

	months, fail := trailingMonths(in)
	if fail != nil {
		return *fail
	}

	totalKey := types.TotalBucketKey(types.DayTypeAll)
	var missing []string
	for _, m := range months {
		if _, ok := in.Usage.Kwh(m, totalKey); !ok {
			missing = append(missing, m+"/"+totalKey.String())
		}
	}
	if len(missing) > 0 {
		return missingBuckets(missing)
	}

	accums := make([]monthAccum, 0, len(months))
	for _, m := range months {
		total, _ := in.Usage.Kwh(m, totalKey)

		acc := monthAccum{
			month:             m,
			totalKwh:          total,
			repEnergyCents:    tieredEnergyCents(c.Tiers, total),
			repFixedCents:     centsFromDollars(repFixed),
			tdspDeliveryCents: energyCents(total, in.Tdsp.PerKwhDeliveryChargeCents),
			tdspFixedCents:    centsFromDollars(in.Tdsp.MonthlyCustomerChargeDollars),
		}
		acc.applyModifiers(credits, minRule)
		accums = append(accums, acc)
	}

	notes = append([]string{
		fmt.Sprintf("classified as tiered blocks with %d band(s)", len(c.Tiers)),
		"tier thresholds reset each billing month",
	}, notes...)
	notes = append(notes, modifierNotes(credits, minRule)...)
	return assembleMonths(plan.KindTieredBlocks, accums, in.Months, types.ConfidenceMedium, notes)
}

// tieredEnergyCents folds a month's kWh through the ascending bands, rounding
// each band's charge to whole cents before summing.
func tieredEnergyCents(bands []plan.TierBand, monthKwh float64) int64 {
	var cents int64
	var prevUpTo float64
	remaining := monthKwh
	for _, b := range bands {
		if remaining <= 0 {
			break
		}
		inBand := remaining
		if !b.Unbounded() {
			width := b.UpToKwh - prevUpTo
			if inBand > width {
				inBand = width
			}
			prevUpTo = b.UpToKwh
		}
		cents += energyCents(inBand, b.CentsPerKwh)
		remaining -= inBand
	}
	// usage beyond a bounded last band is charged at that band's rate
	if remaining > 0 && len(bands) > 0 {
		cents += energyCents(remaining, bands[len(bands)-1].CentsPerKwh)
	}
	return cents
}
