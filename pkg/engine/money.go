package engine

import "github.com/shopspring/decimal"

// Monetary policy: every line item is rounded to whole cents (half away from
// zero, which is half-up for charges) before it is accumulated, so folds
// across months cannot pick up floating-point drift. Dollar outputs are exact
// cent conversions at 2 decimal places.

// centsFromDollars converts a dollar amount to whole cents.
func centsFromDollars(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// energyCents computes kWh times a cents/kWh rate, rounded to whole cents.
func energyCents(kwh, centsPerKwh float64) int64 {
	return decimal.NewFromFloat(kwh).Mul(decimal.NewFromFloat(centsPerKwh)).Round(0).IntPart()
}

// dollarsFromCents converts whole cents back to a dollar amount.
func dollarsFromCents(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return f
}

// divideCents splits a cent total evenly, rounding half away from zero.
func divideCents(cents int64, n int) int64 {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(int64(n))).Round(0).IntPart()
}
