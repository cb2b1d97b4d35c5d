package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/truecost/pkg/types"
)

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed rate", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{"energyRateCents": 14.5})
		require.Equal(t, KindFixedRate, c.Kind)
		assert.Equal(t, 14.5, c.FixedRateCents)
		assert.Equal(t, "energyRateCents", c.FixedRateField)
	})

	t.Run("tou signal vetoes fixed rate", func(t *testing.T) {
		// a TOU template that also stores a legacy off-peak convenience value
		// must never classify as a flat rate
		c := Classify(ctx, types.RateStructure{
			"energyRateCents": 9.8,
			"touPeriods": []any{
				map[string]any{"dayType": "all", "start": 700, "end": 2000, "centsPerKwh": 22.0},
				map[string]any{"dayType": "all", "start": 2000, "end": 700, "centsPerKwh": 9.8},
			},
		})
		assert.Equal(t, KindTouDayNight, c.Kind)
	})

	t.Run("tou flag without periods is unsupported", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{
			"isTou":           true,
			"energyRateCents": 9.8,
		})
		assert.Equal(t, KindUnsupported, c.Kind)
	})

	t.Run("legacy weekday weekend", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{
			"timeOfUsePeriods": []any{
				map[string]any{"dayType": "weekday", "start": 0, "end": 2400, "centsPerKwh": 13.0},
				map[string]any{"dayType": "weekend", "start": 0, "end": 2400, "centsPerKwh": 8.0},
			},
		})
		assert.Equal(t, KindTouWeekdayWeekend, c.Kind)
	})

	t.Run("windowed tou", func(t *testing.T) {
		// off-by-a-minute boundaries are windowed, not legacy: exact match only
		c := Classify(ctx, types.RateStructure{
			"touPeriods": []any{
				map[string]any{"dayType": "all", "start": 701, "end": 2000, "centsPerKwh": 22.0},
				map[string]any{"dayType": "all", "start": 2000, "end": 701, "centsPerKwh": 9.8},
			},
		})
		assert.Equal(t, KindTouWindowed, c.Kind)
	})

	t.Run("tiered", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{
			"tiers": []any{
				map[string]any{"upToKwh": 500, "centsPerKwh": 15.0},
				map[string]any{"upToKwh": 0, "centsPerKwh": 10.0},
			},
		})
		require.Equal(t, KindTieredBlocks, c.Kind)
		assert.Len(t, c.Tiers, 2)
	})

	t.Run("tiered checked before tou", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{
			"tiers": []any{
				map[string]any{"upToKwh": 0, "centsPerKwh": 10.0},
			},
			"isTou": true,
		})
		assert.Equal(t, KindTieredBlocks, c.Kind)
	})

	t.Run("indexed", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{"isIndexed": true, "energyRateCents": 11.0})
		assert.Equal(t, KindIndexedVariable, c.Kind)

		c = Classify(ctx, types.RateStructure{"planType": "variable_rate"})
		assert.Equal(t, KindIndexedVariable, c.Kind)
	})

	t.Run("ambiguous fixed rate is unsupported", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{
			"energyRateCents": 14.5,
			"rateCentsPerKwh": 12.9,
		})
		assert.Equal(t, KindUnsupported, c.Kind)
	})

	t.Run("empty structure", func(t *testing.T) {
		c := Classify(ctx, types.RateStructure{})
		assert.Equal(t, KindUnsupported, c.Kind)
	})
}
