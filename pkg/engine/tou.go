package engine

import (
	"fmt"
	"math"

	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// Reconciliation tolerances between a month's all.total bucket and the sum of
// its constituent window buckets. Legacy two-bucket schedules come from an
// older aggregation with looser rounding; windowed schedules reconcile
// tightly.
const (
	legacyBucketEpsilonKwh   = 0.01
	windowedBucketEpsilonKwh = 0.001
)

// estimateTou prices any time-of-use schedule from monthly usage buckets.
// Each period's kWh comes from its derived bucket key; the period sum must
// reconcile against the month total or the estimate fails closed.
func estimateTou(in Input, c plan.Classified, credits []plan.CreditRule, minRule *plan.MinimumRule) types.TrueCostEstimate {
	repFixed, notes, fail := resolveMonthlyCharge(in.Plan)
	if fail != nil {
		return *fail
	}

	eps := windowedBucketEpsilonKwh
	if c.Kind == plan.KindTouDayNight || c.Kind == plan.KindTouWeekdayWeekend {
		eps = legacyBucketEpsilonKwh
	}

	months, fail := trailingMonths(in)
	if fail != nil {
		return *fail
	}

	// First pass: every required key must exist in every month. Collect the
	// full set of offenders before failing so the reason names them all.
	totalKey := types.TotalBucketKey(types.DayTypeAll)
	var missing []string
	for _, m := range months {
		if _, ok := in.Usage.Kwh(m, totalKey); !ok {
			missing = append(missing, m+"/"+totalKey.String())
		}
		for _, p := range c.Tou.Periods {
			if _, ok := in.Usage.Kwh(m, p.BucketKey()); !ok {
				missing = append(missing, m+"/"+p.BucketKey().String())
			}
		}
	}
	if len(missing) > 0 {
		return missingBuckets(missing)
	}

	accums := make([]monthAccum, 0, len(months))
	for _, m := range months {
		total, _ := in.Usage.Kwh(m, totalKey)

		var periodSum float64
		var repEnergy int64
		for _, p := range c.Tou.Periods {
			kwh, _ := in.Usage.Kwh(m, p.BucketKey())
			periodSum += kwh
			repEnergy += energyCents(kwh, p.CentsPerKwh)
		}

		if diff := math.Abs(periodSum - total); diff > eps {
			return notComputable(fmt.Sprintf(
				"%s: month %s periods sum %.3f kWh vs total %.3f kWh (diff %.3f, tolerance %.3f)",
				types.ReasonBucketSumMismatch, m, periodSum, total, diff, eps), nil)
		}

		acc := monthAccum{
			month:             m,
			totalKwh:          total,
			repEnergyCents:    repEnergy,
			repFixedCents:     centsFromDollars(repFixed),
			tdspDeliveryCents: energyCents(total, in.Tdsp.PerKwhDeliveryChargeCents),
			tdspFixedCents:    centsFromDollars(in.Tdsp.MonthlyCustomerChargeDollars),
		}
		acc.applyModifiers(credits, minRule)
		accums = append(accums, acc)
	}

	notes = append([]string{
		fmt.Sprintf("classified as %s with %d period(s)", c.Kind, len(c.Tou.Periods)),
		"tdsp delivery applied to month totals",
	}, notes...)
	notes = append(notes, modifierNotes(credits, minRule)...)
	return assembleMonths(c.Kind, accums, in.Months, types.ConfidenceMedium, notes)
}
