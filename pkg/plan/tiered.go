package plan

import (
	"fmt"

	"github.com/truecost/truecost/pkg/resolve"
	"github.com/truecost/truecost/pkg/types"
)

// TierBand is one kWh block with its own REP rate. UpToKwh is the inclusive
// upper bound of the band within a billing month; 0 marks the unbounded last
// band.
type TierBand struct {
	UpToKwh     float64
	CentsPerKwh float64
}

// Unbounded reports whether the band has no upper kWh limit.
func (b TierBand) Unbounded() bool { return b.UpToKwh == 0 }

// ExtractTierBands parses the kWh-block schedule. Bands must have strictly
// ascending thresholds and only the last band may be unbounded.
func ExtractTierBands(rs types.RateStructure) ([]TierBand, error) {
	var raw []any
	for _, f := range tierFields {
		if s, ok := rs.Slice(f); ok {
			raw = s
			break
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("tiered plan has no tier bands")
	}

	bands := make([]TierBand, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tier band %d is not an object", i)
		}
		tm := types.RateStructure(m)

		rate, ok := resolve.ResolveUniqueFloat(
			tm.Raw("centsPerKwh", "rateCents", "energyRateCents"),
			resolve.EnergyCentsPerKwh,
		)
		if !ok {
			return nil, fmt.Errorf("tier band %d: no confident rate", i)
		}

		var upTo float64
		if f, present := firstNumber(tm, "upToKwh", "maxKwh", "thresholdKwh"); present {
			if f != 0 {
				v, ok := resolve.ResolveUniqueFloat([]any{f}, resolve.ThresholdKwh)
				if !ok {
					return nil, fmt.Errorf("tier band %d: threshold %v out of range", i, f)
				}
				upTo = v
			}
		}

		bands = append(bands, TierBand{UpToKwh: upTo, CentsPerKwh: rate})
	}

	// validate ordering: ascending thresholds, unbounded only at the end
	for i, b := range bands {
		if b.Unbounded() {
			if i != len(bands)-1 {
				return nil, fmt.Errorf("tier band %d is unbounded but not last", i)
			}
			continue
		}
		if i > 0 && !bands[i-1].Unbounded() && b.UpToKwh <= bands[i-1].UpToKwh {
			return nil, fmt.Errorf("tier band %d threshold %v does not ascend", i, b.UpToKwh)
		}
	}

	return bands, nil
}

func firstNumber(m types.RateStructure, aliases ...string) (float64, bool) {
	for _, a := range aliases {
		if f, ok := m.Number(a); ok {
			return f, true
		}
	}
	return 0, false
}
