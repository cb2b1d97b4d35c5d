// Package plan classifies an upstream rate-structure blob into one of the
// deterministic pricing kinds and extracts the numeric features each kind
// needs. Every extractor fails closed: an ambiguous or out-of-range value
// resolves to "not found", never to a guess.
package plan

import (
	"context"
	"log/slog"
	"strings"

	"github.com/truecost/truecost/pkg/log"
	"github.com/truecost/truecost/pkg/types"
)

// Kind is the pricing model a rate structure classifies into.
type Kind int

const (
	KindUnsupported Kind = iota
	KindFixedRate
	KindTouDayNight
	KindTouWeekdayWeekend
	KindTouWindowed
	KindTieredBlocks
	KindIndexedVariable
)

func (k Kind) String() string {
	switch k {
	case KindFixedRate:
		return "fixedRate"
	case KindTouDayNight:
		return "touDayNight"
	case KindTouWeekdayWeekend:
		return "touWeekdayWeekend"
	case KindTouWindowed:
		return "touWindowed"
	case KindTieredBlocks:
		return "tieredBlocks"
	case KindIndexedVariable:
		return "indexedVariable"
	}
	return "unsupported"
}

// Classified is the tagged result of one classification pass. Exactly the
// payload for the classified kind is populated; downstream branches switch on
// Kind instead of probing the blob again.
type Classified struct {
	Kind Kind

	// FixedRateCents and its source alias, for KindFixedRate.
	FixedRateCents float64
	FixedRateField string

	// Tou holds the schedule for the three TOU kinds.
	Tou *TouSchedule

	// Tiers holds the ascending bands for KindTieredBlocks.
	Tiers []TierBand

	// Anchors holds disclosed average-price points for KindIndexedVariable.
	// May be empty when the plan discloses none.
	Anchors []PriceAnchor

	// Detail explains an unsupported classification.
	Detail string
}

// Classify inspects the blob and yields one pricing-kind variant. Rule
// ordering matters: indexed, tiered and TOU signals are checked before the
// fixed-rate fast path, so a TOU template that also carries a legacy
// convenience energyRateCents field can never masquerade as a flat rate.
func Classify(ctx context.Context, rs types.RateStructure) Classified {
	if hasIndexedSignal(rs) {
		anchors := ExtractIndexedAnchors(rs)
		log.Ctx(ctx).DebugContext(ctx, "classified rate structure",
			slog.String("kind", "indexedVariable"),
			slog.Int("anchors", len(anchors)))
		return Classified{Kind: KindIndexedVariable, Anchors: anchors}
	}

	if hasTierSignal(rs) {
		tiers, err := ExtractTierBands(rs)
		if err != nil {
			return Classified{Kind: KindUnsupported, Detail: err.Error()}
		}
		return Classified{Kind: KindTieredBlocks, Tiers: tiers}
	}

	if hasTouSignal(rs) {
		sched, err := ExtractTouSchedule(rs)
		if err != nil {
			return Classified{Kind: KindUnsupported, Detail: err.Error()}
		}
		c := Classified{Tou: sched}
		switch sched.Legacy {
		case LegacyDayNightAllDays:
			c.Kind = KindTouDayNight
		case LegacyWeekdayWeekendAllDay:
			c.Kind = KindTouWeekdayWeekend
		default:
			c.Kind = KindTouWindowed
		}
		return c
	}

	if rate, field, ok := ExtractFixedEnergyRate(rs); ok {
		return Classified{Kind: KindFixedRate, FixedRateCents: rate, FixedRateField: field}
	}

	return Classified{Kind: KindUnsupported, Detail: "no confident fixed energy rate and no recognized pricing signal"}
}

// HasPricingSignal reports whether the blob carries any indexed, tiered or
// time-of-use signal. Callers use it to tell an ambiguous flat rate apart
// from a structural failure in one of the other kinds.
func HasPricingSignal(rs types.RateStructure) bool {
	return hasIndexedSignal(rs) || hasTierSignal(rs) || hasTouSignal(rs)
}

// planTypeFields are the aliases under which upstream records a plan type
// string.
var planTypeFields = []string{"rateType", "planType", "pricingType", "type"}

func planTypeContains(rs types.RateStructure, substrs ...string) bool {
	for _, f := range planTypeFields {
		s, ok := rs.String(f)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.ReplaceAll(s, "_", ""))
		for _, sub := range substrs {
			if strings.Contains(s, sub) {
				return true
			}
		}
	}
	return false
}

func hasIndexedSignal(rs types.RateStructure) bool {
	for _, f := range []string{"isIndexed", "indexed", "isVariable", "variableRate"} {
		if b, ok := rs.Bool(f); ok && b {
			return true
		}
	}
	return planTypeContains(rs, "indexed", "variable", "marketrate")
}

// tierFields are the aliases under which upstream records kWh-block bands.
var tierFields = []string{"tiers", "kwhTiers", "blockRates", "tieredRates"}

func hasTierSignal(rs types.RateStructure) bool {
	for _, f := range tierFields {
		if _, ok := rs.Slice(f); ok {
			return true
		}
	}
	return planTypeContains(rs, "tiered", "block")
}

// touPeriodFields are the aliases under which upstream records TOU periods.
var touPeriodFields = []string{"touPeriods", "timeOfUsePeriods", "periods"}

// hasTouSignal reports any time-of-use signal: an explicit type flag or a
// non-empty period array. This is the guard that refuses FixedRate
// classification for TOU templates (a known upstream artifact stores a legacy
// off-peak convenience rate on them).
func hasTouSignal(rs types.RateStructure) bool {
	for _, f := range []string{"isTou", "timeOfUse", "isTimeOfUse"} {
		if b, ok := rs.Bool(f); ok && b {
			return true
		}
	}
	for _, f := range touPeriodFields {
		if _, ok := rs.Slice(f); ok {
			return true
		}
	}
	return planTypeContains(rs, "tou", "timeofuse")
}
