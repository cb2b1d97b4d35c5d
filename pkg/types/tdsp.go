package types

import "time"

// TdspRatesApplied is the delivery tariff in effect for the whole billing
// window. There are no mid-window tariff changes in v1: the caller resolves a
// single tariff for the relevant effective date before estimating.
type TdspRatesApplied struct {
	PerKwhDeliveryChargeCents    float64   `json:"perKwhDeliveryChargeCents" yaml:"perKwhDeliveryChargeCents"`
	MonthlyCustomerChargeDollars float64   `json:"monthlyCustomerChargeDollars" yaml:"monthlyCustomerChargeDollars"`
	EffectiveDate                time.Time `json:"effectiveDate" yaml:"effectiveDate"`
}
