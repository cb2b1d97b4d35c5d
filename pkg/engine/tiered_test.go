package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/truecost/pkg/types"
)

func tieredPlan() types.RateStructure {
	return types.RateStructure{
		"tiers": []any{
			map[string]any{"upToKwh": 500, "centsPerKwh": 15.0},
			map[string]any{"upToKwh": 1000, "centsPerKwh": 12.0},
			map[string]any{"centsPerKwh": 10.0},
		},
	}
}

func TestEstimateTiered(t *testing.T) {
	ctx := context.Background()

	t.Run("annual only usage rejected", func(t *testing.T) {
		est := Estimate(ctx, Input{
			Plan:      tieredPlan(),
			AnnualKwh: 12000,
			Tdsp:      testTdsp,
			Months:    12,
		})
		require.Equal(t, types.StatusNotComputable, est.Status)
		assert.Equal(t, types.ReasonTieredNeedsMonthly, est.Reason)
	})

	t.Run("scenario C insufficient history", func(t *testing.T) {
		usage := monthlyTotals(map[string]float64{
			"2025-01": 900, "2025-02": 850, "2025-03": 800,
			"2025-04": 950, "2025-05": 1100, "2025-06": 1400,
		})
		est := Estimate(ctx, Input{
			Plan:      tieredPlan(),
			AnnualKwh: 12000,
			Tdsp:      testTdsp,
			Months:    12,
			Usage:     usage,
		})
		require.Equal(t, types.StatusNotComputable, est.Status)
		assert.Contains(t, est.Reason, "need 12 months, have 6")
	})

	t.Run("band fold per month", func(t *testing.T) {
		est := Estimate(ctx, Input{
			Plan:      tieredPlan(),
			AnnualKwh: 6600,
			Tdsp:      testTdsp,
			Months:    2,
			Usage:     monthlyTotals(map[string]float64{"2025-05": 800, "2025-06": 300}),
		})
		require.Equal(t, types.StatusOK, est.Status, est.Reason)
		assert.Equal(t, types.ConfidenceMedium, est.Confidence)
		// May: 500@15¢ + 300@12¢ = $111; June: 300@15¢ = $45
		assert.Equal(t, 156.00, est.Breakdown.Rep.EnergyDollars)
		// delivery: (800+300)*4.2¢ = $46.20; customer: 2*$5
		assert.Equal(t, 46.20, est.Breakdown.Tdsp.DeliveryDollars)
		assert.Equal(t, 10.00, est.Breakdown.Tdsp.CustomerChargeDollars)
		assert.Equal(t, 212.20, est.AnnualCostDollars)
		assert.Equal(t, 106.10, est.MonthlyCostDollars)
	})

	t.Run("thresholds reset each month", func(t *testing.T) {
		// two months of 600 must not price like one month of 1200
		est := Estimate(ctx, Input{
			Plan:      tieredPlan(),
			AnnualKwh: 7200,
			Tdsp:      types.TdspRatesApplied{},
			Months:    2,
			Usage:     monthlyTotals(map[string]float64{"2025-05": 600, "2025-06": 600}),
		})
		require.Equal(t, types.StatusOK, est.Status, est.Reason)
		// each month: 500@15¢ + 100@12¢ = $87
		assert.Equal(t, 174.00, est.Breakdown.Rep.EnergyDollars)
	})

	t.Run("missing month totals enumerated", func(t *testing.T) {
		est := Estimate(ctx, Input{
			Plan:      tieredPlan(),
			AnnualKwh: 12000,
			Tdsp:      testTdsp,
			Months:    1,
			Usage: types.UsageBucketsByMonth{
				"2025-06": {"kwh.m.weekday.total": 700},
			},
		})
		require.Equal(t, types.StatusNotComputable, est.Status)
		assert.Contains(t, est.Reason, "2025-06/kwh.m.all.total")
	})
}
