package types

// Status is the outcome class of a cost estimate. A NOT_COMPUTABLE result is a
// final, deterministic answer for the given inputs, not a transient failure.
type Status string

const (
	StatusOK             Status = "OK"
	StatusApproximate    Status = "APPROXIMATE"
	StatusNotComputable  Status = "NOT_COMPUTABLE"
	StatusNotImplemented Status = "NOT_IMPLEMENTED"
)

// Confidence indicates how much the estimate should be trusted. Only the
// no-modifier fixed-rate path reaches HIGH.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Well-known reason codes surfaced on non-OK estimates. Reasons may carry a
// suffix with details (e.g. the missing bucket keys) after a ": " separator.
const (
	ReasonInvalidAnnualKwh       = "INVALID_ANNUAL_KWH"
	ReasonInvalidMonths          = "INVALID_MONTHS_COUNT"
	ReasonMissingUsageBuckets    = "MISSING_USAGE_BUCKETS"
	ReasonBucketSumMismatch      = "USAGE_BUCKET_SUM_MISMATCH"
	ReasonUnsupportedStructure   = "UNSUPPORTED_RATE_STRUCTURE"
	ReasonIndexedPricing         = "NON_DETERMINISTIC_PRICING_INDEXED"
	ReasonTieredNeedsMonthly     = "tiered_pricing_requires_monthly_totals"
	ReasonInsufficientHistory    = "INSUFFICIENT_USAGE_HISTORY"
	ReasonAmbiguousEnergyRate    = "AMBIGUOUS_ENERGY_RATE"
	ReasonAmbiguousMonthlyCharge = "AMBIGUOUS_MONTHLY_CHARGE"
)

// RepBreakdown is the portion of the bill owed to the retail electric
// provider.
type RepBreakdown struct {
	EnergyDollars       float64 `json:"energyDollars"`
	FixedMonthlyDollars float64 `json:"fixedMonthlyDollars"`
}

// TdspBreakdown is the portion of the bill owed to the delivery utility.
type TdspBreakdown struct {
	DeliveryDollars       float64 `json:"deliveryDollars"`
	CustomerChargeDollars float64 `json:"customerChargeDollars"`
}

// CostBreakdown is a two-level component breakdown: flat totals plus the
// REP/TDSP split. Credit and minimum lines are zero when not applicable.
type CostBreakdown struct {
	EnergyDollars       float64 `json:"energyDollars"`
	FixedDollars        float64 `json:"fixedDollars"`
	DeliveryDollars     float64 `json:"deliveryDollars"`
	CreditsDollars      float64 `json:"creditsDollars,omitempty"`
	MinimumFeeDollars   float64 `json:"minimumFeeDollars,omitempty"`
	MinimumTopUpDollars float64 `json:"minimumTopUpDollars,omitempty"`
	TotalDollars        float64 `json:"totalDollars"`

	Rep  RepBreakdown  `json:"rep"`
	Tdsp TdspBreakdown `json:"tdsp"`
}

// CurrentDebugVersion is the version of the Debug payload. Increment when
// adding fields. Fields are strictly additive and non-contractual: tests and
// callers must never depend on the exact shape.
const CurrentDebugVersion = 1

// MonthDebug captures the per-month fold for auditing.
type MonthDebug struct {
	Month             string  `json:"month"`
	TotalKwh          float64 `json:"totalKwh"`
	RepEnergyCents    int64   `json:"repEnergyCents"`
	RepFixedCents     int64   `json:"repFixedCents"`
	TdspDeliveryCents int64   `json:"tdspDeliveryCents"`
	TdspFixedCents    int64   `json:"tdspFixedCents"`
	CreditCents       int64   `json:"creditCents,omitempty"`
	MinFeeCents       int64   `json:"minFeeCents,omitempty"`
	MinTopUpCents     int64   `json:"minTopUpCents,omitempty"`
	TotalCents        int64   `json:"totalCents"`
}

// AnchorDebug records the indexed-approximation inputs and choice.
type AnchorDebug struct {
	Method       string    `json:"method"`
	AnchorsKwh   []float64 `json:"anchorsKwh"`
	AnchorsCents []float64 `json:"anchorsCents"`
	ChosenCents  float64   `json:"chosenCents"`
}

// Debug is an optional diagnostic payload attached to an estimate.
type Debug struct {
	Version int          `json:"version"`
	Kind    string       `json:"kind"`
	Months  []MonthDebug `json:"months,omitempty"`
	Anchor  *AnchorDebug `json:"anchor,omitempty"`
}

// TrueCostEstimate is the result of pricing a plan against a usage profile.
type TrueCostEstimate struct {
	Status     Status     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	Confidence Confidence `json:"confidence"`

	AnnualCostDollars  float64 `json:"annualCostDollars"`
	MonthlyCostDollars float64 `json:"monthlyCostDollars"`

	Breakdown CostBreakdown `json:"breakdown"`

	// Notes is the audit trail: which charges were included vs assumed zero,
	// which alias supplied each resolved value, and so on.
	Notes []string `json:"notes,omitempty"`

	Debug *Debug `json:"debug,omitempty"`
}

// Computable reports whether the estimate carries usable dollar figures.
func (e TrueCostEstimate) Computable() bool {
	return e.Status == StatusOK || e.Status == StatusApproximate
}
