package engine

import (
	"github.com/truecost/truecost/pkg/plan"
	"github.com/truecost/truecost/pkg/types"
)

// monthAccum is the per-month accumulator record every bucketed branch folds
// into. All amounts are whole cents; credits are negative.
type monthAccum struct {
	month    string
	totalKwh float64

	repEnergyCents    int64
	repFixedCents     int64
	tdspDeliveryCents int64
	tdspFixedCents    int64
	creditCents       int64
	minFeeCents       int64
	minTopUpCents     int64
}

// subtotalCents is the month total before the minimum rule: energy plus fixed
// charges plus delivery plus credits, clamped at zero.
func (a monthAccum) subtotalCents() int64 {
	s := a.repEnergyCents + a.repFixedCents + a.tdspDeliveryCents + a.tdspFixedCents + a.creditCents
	if s < 0 {
		return 0
	}
	return s
}

// totalCents is the final month total after the minimum rule.
func (a monthAccum) totalCents() int64 {
	return a.subtotalCents() + a.minFeeCents + a.minTopUpCents
}

// applyModifiers applies bill credits then the minimum rule in the fixed
// per-month order: subtotal with credits, clamp at zero, then the floor.
func (a *monthAccum) applyModifiers(credits []plan.CreditRule, minRule *plan.MinimumRule) {
	for _, c := range credits {
		if c.Applies(a.totalKwh) {
			a.creditCents -= centsFromDollars(c.CreditDollars)
		}
	}
	// the clamp reduces the credit line so the breakdown still sums to the
	// month total
	if s := a.repEnergyCents + a.repFixedCents + a.tdspDeliveryCents + a.tdspFixedCents + a.creditCents; s < 0 {
		a.creditCents -= s
	}

	if minRule == nil {
		return
	}
	switch minRule.Kind {
	case plan.MinimumKindFee:
		if a.totalKwh < minRule.ThresholdKwh {
			a.minFeeCents = centsFromDollars(minRule.FeeDollars)
		}
	case plan.MinimumKindTopUp:
		floor := centsFromDollars(minRule.FloorDollars)
		if sub := a.subtotalCents(); sub < floor {
			a.minTopUpCents = floor - sub
		}
	}
}

// debug renders the accumulator for the diagnostic payload.
func (a monthAccum) debug() types.MonthDebug {
	return types.MonthDebug{
		Month:             a.month,
		TotalKwh:          a.totalKwh,
		RepEnergyCents:    a.repEnergyCents,
		RepFixedCents:     a.repFixedCents,
		TdspDeliveryCents: a.tdspDeliveryCents,
		TdspFixedCents:    a.tdspFixedCents,
		CreditCents:       a.creditCents,
		MinFeeCents:       a.minFeeCents,
		MinTopUpCents:     a.minTopUpCents,
		TotalCents:        a.totalCents(),
	}
}
