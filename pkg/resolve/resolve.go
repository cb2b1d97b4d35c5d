// Package resolve implements the exactly-one-confident-candidate idiom used
// by every rate-structure extractor. The same quantity is historically
// persisted under multiple field names; when the aliases disagree the data is
// stale or ambiguous and must not be silently reconciled.
package resolve

import (
	"github.com/shopspring/decimal"

	"github.com/truecost/truecost/pkg/types"
)

// candidatePrecision is the decimal precision candidates are normalized to
// before deduplication. Two aliases that agree to 4 decimal places are the
// same value.
const candidatePrecision = 4

// Range is a half-open-ish sanity range for a numeric domain. Min is
// inclusive only when MinInclusive is set; Max is always exclusive.
type Range struct {
	Min          float64
	Max          float64
	MinInclusive bool
}

// Contains reports whether d is within the range.
func (r Range) Contains(d decimal.Decimal) bool {
	min := decimal.NewFromFloat(r.Min)
	max := decimal.NewFromFloat(r.Max)
	if r.MinInclusive {
		if d.LessThan(min) {
			return false
		}
	} else if d.LessThanOrEqual(min) {
		return false
	}
	return d.LessThan(max)
}

// Domain sanity ranges shared by the extractors.
var (
	// EnergyCentsPerKwh covers plausible retail energy rates in cents/kWh.
	EnergyCentsPerKwh = Range{Min: 0, Max: 200}
	// MonthlyDollars covers plausible fixed monthly charges.
	MonthlyDollars = Range{Min: 0, Max: 200, MinInclusive: true}
	// CreditDollars covers plausible per-month bill credits.
	CreditDollars = Range{Min: 0, Max: 200}
	// ThresholdKwh covers plausible kWh thresholds for tiers, credits and
	// minimum-usage rules.
	ThresholdKwh = Range{Min: 0, Max: 100000}
)

// Normalize rounds a candidate to the shared comparison precision. Callers
// that need to match a raw field value against a resolved decimal must
// normalize the same way ResolveUnique does.
func Normalize(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(candidatePrecision)
}

// ResolveUnique normalizes each candidate raw value (numbers, numeric
// strings, or absent) to a fixed-precision decimal, filters by the sanity
// range, deduplicates by rounded value, and returns the single surviving
// value. It returns false when zero or two-plus distinct values remain: it
// never averages and never picks the first or largest candidate.
func ResolveUnique(candidates []any, r Range) (decimal.Decimal, bool) {
	var found decimal.Decimal
	var count int
	for _, c := range candidates {
		if c == nil {
			continue
		}
		f, ok := types.CoerceNumber(c)
		if !ok {
			continue
		}
		d := Normalize(f)
		if !r.Contains(d) {
			continue
		}
		if count == 0 {
			found = d
			count = 1
			continue
		}
		if !d.Equal(found) {
			// Two distinct confident values: ambiguous, fail closed.
			return decimal.Decimal{}, false
		}
	}
	if count == 0 {
		return decimal.Decimal{}, false
	}
	return found, true
}

// ResolveUniqueFloat is ResolveUnique for callers that want the float64.
func ResolveUniqueFloat(candidates []any, r Range) (float64, bool) {
	d, ok := ResolveUnique(candidates, r)
	if !ok {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
