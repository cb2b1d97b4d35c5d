package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/truecost/pkg/types"
)

func TestExtractBillCredits(t *testing.T) {
	t.Run("no credits", func(t *testing.T) {
		rules, err := ExtractBillCredits(types.RateStructure{"energyRateCents": 10.0})
		require.NoError(t, err)
		assert.Nil(t, rules)
	})

	t.Run("threshold credit", func(t *testing.T) {
		rules, err := ExtractBillCredits(types.RateStructure{
			"billCredits": []any{
				map[string]any{"minKwh": 1000, "creditDollars": 30.0},
			},
		})
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.False(t, rules[0].Applies(999))
		assert.True(t, rules[0].Applies(1000))
		assert.True(t, rules[0].Applies(5000))
	})

	t.Run("banded credit", func(t *testing.T) {
		rules, err := ExtractBillCredits(types.RateStructure{
			"usageCredits": []any{
				map[string]any{"minKwh": 1000, "maxKwh": 2000, "creditDollars": 25.0},
			},
		})
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.True(t, rules[0].Applies(1500))
		assert.False(t, rules[0].Applies(2000), "upper bound is exclusive")
	})

	t.Run("structurally present but malformed", func(t *testing.T) {
		_, err := ExtractBillCredits(types.RateStructure{"billCredits": "yes"})
		assert.Error(t, err)

		_, err = ExtractBillCredits(types.RateStructure{
			"billCredits": []any{
				map[string]any{"minKwh": 1000},
			},
		})
		assert.Error(t, err)

		_, err = ExtractBillCredits(types.RateStructure{
			"billCredits": []any{
				map[string]any{"minKwh": 1000, "maxKwh": 500, "creditDollars": 30.0},
			},
		})
		assert.Error(t, err)
	})
}

func TestExtractMinimumUsageRule(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		rule, err := ExtractMinimumUsageRule(types.RateStructure{"energyRateCents": 10.0})
		require.NoError(t, err)
		assert.Nil(t, rule)
	})

	t.Run("flat fee", func(t *testing.T) {
		rule, err := ExtractMinimumUsageRule(types.RateStructure{
			"minimumUsageKwh":        500,
			"minimumUsageFeeDollars": 9.95,
		})
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, MinimumKindFee, rule.Kind)
		assert.Equal(t, 500.0, rule.ThresholdKwh)
		assert.Equal(t, 9.95, rule.FeeDollars)
	})

	t.Run("top up floor", func(t *testing.T) {
		rule, err := ExtractMinimumUsageRule(types.RateStructure{
			"minimumMonthlyChargeDollars": 35.0,
		})
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, MinimumKindTopUp, rule.Kind)
		assert.Equal(t, 35.0, rule.FloorDollars)
	})

	t.Run("conflicting forms", func(t *testing.T) {
		_, err := ExtractMinimumUsageRule(types.RateStructure{
			"minimumMonthlyChargeDollars": 35.0,
			"minimumUsageFeeDollars":      9.95,
		})
		assert.Error(t, err)
	})

	t.Run("fee without threshold", func(t *testing.T) {
		_, err := ExtractMinimumUsageRule(types.RateStructure{
			"minimumUsageFeeDollars": 9.95,
		})
		assert.Error(t, err)
	})
}
