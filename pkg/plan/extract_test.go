package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/truecost/pkg/types"
)

func TestExtractFixedEnergyRate(t *testing.T) {
	t.Run("agreeing historical aliases", func(t *testing.T) {
		v, field, ok := ExtractFixedEnergyRate(types.RateStructure{
			"energyRateCents":      14.5,
			"fixedRateCentsPerKwh": "14.5",
		})
		require.True(t, ok)
		assert.Equal(t, 14.5, v)
		assert.Equal(t, "energyRateCents", field)
	})

	t.Run("attribution uses normalized values", func(t *testing.T) {
		// 14.50005 rounds to 14.5001 at resolution precision; the source
		// alias must still be named even though the raw float differs from
		// the resolved value
		v, field, ok := ExtractFixedEnergyRate(types.RateStructure{
			"energyRateCents": 14.50005,
			"rateCentsPerKwh": "14.5001",
		})
		require.True(t, ok)
		assert.Equal(t, 14.5001, v)
		assert.Equal(t, "energyRateCents", field)
	})

	t.Run("disagreeing aliases resolve to not found", func(t *testing.T) {
		_, _, ok := ExtractFixedEnergyRate(types.RateStructure{
			"energyRateCents": 14.5,
			"kwhRateCents":    12.9,
		})
		assert.False(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		_, _, ok := ExtractFixedEnergyRate(types.RateStructure{"other": 1})
		assert.False(t, ok)
		assert.False(t, HasFixedRateField(types.RateStructure{"other": 1}))
		assert.True(t, HasFixedRateField(types.RateStructure{"kwhRateCents": "bad"}))
	})
}

func TestExtractRepFixedMonthlyCharge(t *testing.T) {
	v, field, ok := ExtractRepFixedMonthlyCharge(types.RateStructure{
		"baseChargeDollars": 9.95,
	})
	require.True(t, ok)
	assert.Equal(t, 9.95, v)
	assert.Equal(t, "baseChargeDollars", field)

	// zero is a legitimate disclosed charge
	v, _, ok = ExtractRepFixedMonthlyCharge(types.RateStructure{
		"monthlyFeeDollars": 0,
	})
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, _, ok = ExtractRepFixedMonthlyCharge(types.RateStructure{
		"baseChargeDollars": 9.95,
		"monthlyFeeDollars": 4.95,
	})
	assert.False(t, ok)
}

func TestExtractTierBands(t *testing.T) {
	t.Run("ascending with unbounded tail", func(t *testing.T) {
		bands, err := ExtractTierBands(types.RateStructure{
			"tiers": []any{
				map[string]any{"upToKwh": 500, "centsPerKwh": 15.0},
				map[string]any{"upToKwh": 1000, "centsPerKwh": 12.0},
				map[string]any{"centsPerKwh": 10.0},
			},
		})
		require.NoError(t, err)
		require.Len(t, bands, 3)
		assert.True(t, bands[2].Unbounded())
	})

	t.Run("unbounded band not last", func(t *testing.T) {
		_, err := ExtractTierBands(types.RateStructure{
			"tiers": []any{
				map[string]any{"centsPerKwh": 10.0},
				map[string]any{"upToKwh": 500, "centsPerKwh": 15.0},
			},
		})
		assert.Error(t, err)
	})

	t.Run("non-ascending thresholds", func(t *testing.T) {
		_, err := ExtractTierBands(types.RateStructure{
			"blockRates": []any{
				map[string]any{"upToKwh": 1000, "centsPerKwh": 15.0},
				map[string]any{"upToKwh": 500, "centsPerKwh": 12.0},
			},
		})
		assert.Error(t, err)
	})

	t.Run("band without confident rate", func(t *testing.T) {
		_, err := ExtractTierBands(types.RateStructure{
			"tiers": []any{
				map[string]any{"upToKwh": 500},
			},
		})
		assert.Error(t, err)
	})
}

func TestExtractIndexedAnchors(t *testing.T) {
	t.Run("sorted by usage", func(t *testing.T) {
		anchors := ExtractIndexedAnchors(types.RateStructure{
			"avgPriceAnchors": []any{
				map[string]any{"usageKwh": 2000, "centsPerKwh": 13.0},
				map[string]any{"usageKwh": 500, "centsPerKwh": 18.0},
				map[string]any{"usageKwh": 1000, "centsPerKwh": 15.0},
			},
		})
		require.Len(t, anchors, 3)
		assert.Equal(t, 500.0, anchors[0].UsageKwh)
		assert.Equal(t, 2000.0, anchors[2].UsageKwh)
	})

	t.Run("malformed entries skipped", func(t *testing.T) {
		anchors := ExtractIndexedAnchors(types.RateStructure{
			"averagePrices": []any{
				map[string]any{"usageKwh": 1000, "centsPerKwh": 15.0},
				map[string]any{"usageKwh": "bad"},
				"not an object",
			},
		})
		assert.Len(t, anchors, 1)
	})

	t.Run("none disclosed", func(t *testing.T) {
		assert.Empty(t, ExtractIndexedAnchors(types.RateStructure{"isIndexed": true}))
	})
}
