package plan

import (
	"github.com/truecost/truecost/pkg/resolve"
	"github.com/truecost/truecost/pkg/types"
)

// fixedRateAliases are the historical spellings of the fixed energy rate in
// cents/kWh. The upstream schema has accumulated these over time; a record
// may carry several, and they must agree to be trusted.
var fixedRateAliases = []string{
	"energyRateCents",
	"energy_rate_cents",
	"fixedRateCentsPerKwh",
	"rateCentsPerKwh",
	"energyChargeCentsPerKwh",
	"kwhRateCents",
}

// monthlyChargeAliases are the historical spellings of the REP fixed monthly
// charge in dollars.
var monthlyChargeAliases = []string{
	"baseChargeDollars",
	"monthlyFeeDollars",
	"repMonthlyChargeDollars",
	"baseMonthlyFeeDollars",
	"monthlyServiceFeeDollars",
}

// ExtractFixedEnergyRate resolves the flat energy rate in cents/kWh. It also
// returns the alias field that supplied the value, for the audit trail.
func ExtractFixedEnergyRate(rs types.RateStructure) (float64, string, bool) {
	return resolveAliases(rs, fixedRateAliases, resolve.EnergyCentsPerKwh)
}

// HasFixedRateField reports whether any fixed-rate alias is present at all,
// regardless of whether it resolves. Used to distinguish "no rate" from
// "ambiguous rate" in failure reasons.
func HasFixedRateField(rs types.RateStructure) bool {
	for _, a := range fixedRateAliases {
		if _, ok := rs[a]; ok {
			return true
		}
	}
	return false
}

// ExtractRepFixedMonthlyCharge resolves the REP fixed monthly charge in
// dollars. A missing charge is not an error: most plans have none, and the
// engine records it as assumed zero.
func ExtractRepFixedMonthlyCharge(rs types.RateStructure) (float64, string, bool) {
	return resolveAliases(rs, monthlyChargeAliases, resolve.MonthlyDollars)
}

// HasMonthlyChargeField reports whether any monthly-charge alias is present.
func HasMonthlyChargeField(rs types.RateStructure) bool {
	for _, a := range monthlyChargeAliases {
		if _, ok := rs[a]; ok {
			return true
		}
	}
	return false
}

// resolveAliases runs ResolveUnique over the alias values and, on success,
// names the first alias whose normalized value equals the resolved one.
func resolveAliases(rs types.RateStructure, aliases []string, r resolve.Range) (float64, string, bool) {
	d, ok := resolve.ResolveUnique(rs.Raw(aliases...), r)
	if !ok {
		return 0, "", false
	}
	v, _ := d.Float64()
	for _, a := range aliases {
		if f, present := rs.Number(a); present && resolve.Normalize(f).Equal(d) {
			return v, a, true
		}
	}
	return v, "", true
}
