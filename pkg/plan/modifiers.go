package plan

import (
	"fmt"

	"github.com/truecost/truecost/pkg/resolve"
	"github.com/truecost/truecost/pkg/types"
)

// CreditRule grants a bill credit when the month's usage falls inside
// [MinKwh, MaxKwh). MaxKwh of 0 means no upper bound.
type CreditRule struct {
	MinKwh        float64
	MaxKwh        float64
	CreditDollars float64
}

// Applies reports whether the rule grants its credit at the given usage.
func (c CreditRule) Applies(monthKwh float64) bool {
	if monthKwh < c.MinKwh {
		return false
	}
	return c.MaxKwh == 0 || monthKwh < c.MaxKwh
}

// creditFields are the aliases under which upstream records usage credits.
var creditFields = []string{"billCredits", "usageCredits"}

// ExtractBillCredits parses usage-threshold credit rules. The tri-state
// contract: (rules, nil) when credits resolve, (nil, nil) when the plan has
// none, (nil, err) when credits are structurally present but unparsable.
func ExtractBillCredits(rs types.RateStructure) ([]CreditRule, error) {
	var raw []any
	var present bool
	for _, f := range creditFields {
		if _, ok := rs[f]; ok {
			present = true
		}
		if s, ok := rs.Slice(f); ok {
			raw = s
			break
		}
	}
	if len(raw) == 0 {
		if present {
			return nil, fmt.Errorf("bill credits present but empty or malformed")
		}
		return nil, nil
	}

	rules := make([]CreditRule, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("bill credit %d is not an object", i)
		}
		cm := types.RateStructure(m)

		min, ok := resolve.ResolveUniqueFloat(
			cm.Raw("minKwh", "minimumKwh", "thresholdKwh"),
			resolve.ThresholdKwh,
		)
		if !ok {
			return nil, fmt.Errorf("bill credit %d: no confident usage threshold", i)
		}

		var max float64
		if f, hasMax := firstNumber(cm, "maxKwh", "maximumKwh"); hasMax && f != 0 {
			v, ok := resolve.ResolveUniqueFloat([]any{f}, resolve.ThresholdKwh)
			if !ok || v <= min {
				return nil, fmt.Errorf("bill credit %d: invalid upper bound %v", i, f)
			}
			max = v
		}

		dollars, ok := resolve.ResolveUniqueFloat(
			cm.Raw("creditDollars", "creditAmountDollars", "amountDollars"),
			resolve.CreditDollars,
		)
		if !ok {
			return nil, fmt.Errorf("bill credit %d: no confident credit amount", i)
		}

		rules = append(rules, CreditRule{MinKwh: min, MaxKwh: max, CreditDollars: dollars})
	}
	return rules, nil
}

// MinimumKind distinguishes the two minimum-usage rule forms.
type MinimumKind int

const (
	// MinimumKindFee charges a flat fee when usage is below the threshold.
	MinimumKindFee MinimumKind = iota
	// MinimumKindTopUp raises the month subtotal to a contractual floor.
	MinimumKindTopUp
)

// MinimumRule is a per-month floor applied after credits.
type MinimumRule struct {
	Kind         MinimumKind
	ThresholdKwh float64
	FeeDollars   float64
	FloorDollars float64
}

// ExtractMinimumUsageRule parses the minimum-usage rule if any. The tri-state
// contract mirrors ExtractBillCredits: (nil, nil) means the plan has no
// minimum rule.
func ExtractMinimumUsageRule(rs types.RateStructure) (*MinimumRule, error) {
	_, hasFee := rs["minimumUsageFeeDollars"]
	_, hasThreshold := rs["minimumUsageKwh"]
	_, hasFloor := rs["minimumMonthlyChargeDollars"]

	if !hasFee && !hasThreshold && !hasFloor {
		return nil, nil
	}
	if hasFloor && (hasFee || hasThreshold) {
		return nil, fmt.Errorf("minimum rule has both fee and top-up forms")
	}

	if hasFloor {
		floor, ok := resolve.ResolveUniqueFloat(
			rs.Raw("minimumMonthlyChargeDollars"),
			resolve.MonthlyDollars,
		)
		if !ok {
			return nil, fmt.Errorf("no confident minimum monthly charge")
		}
		return &MinimumRule{Kind: MinimumKindTopUp, FloorDollars: floor}, nil
	}

	if !hasFee || !hasThreshold {
		return nil, fmt.Errorf("minimum usage fee requires both fee and kWh threshold")
	}
	fee, ok := resolve.ResolveUniqueFloat(
		rs.Raw("minimumUsageFeeDollars"),
		resolve.MonthlyDollars,
	)
	if !ok {
		return nil, fmt.Errorf("no confident minimum usage fee")
	}
	threshold, ok := resolve.ResolveUniqueFloat(
		rs.Raw("minimumUsageKwh"),
		resolve.ThresholdKwh,
	)
	if !ok {
		return nil, fmt.Errorf("no confident minimum usage threshold")
	}
	return &MinimumRule{Kind: MinimumKindFee, ThresholdKwh: threshold, FeeDollars: fee}, nil
}
