package tdsp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	r := Default()

	t.Run("known providers", func(t *testing.T) {
		assert.Equal(t, []string{"aep_central", "aep_north", "centerpoint", "oncor", "tnmp"}, r.Providers())
	})

	t.Run("resolve current tariff", func(t *testing.T) {
		rates, err := r.Resolve("oncor", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 5.1, rates.PerKwhDeliveryChargeCents)
		assert.Equal(t, 4.23, rates.MonthlyCustomerChargeDollars)
	})

	t.Run("case insensitive", func(t *testing.T) {
		_, err := r.Resolve("Oncor", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := r.Resolve("nope", time.Now())
		assert.Error(t, err)
	})

	t.Run("date before any tariff", func(t *testing.T) {
		_, err := r.Resolve("oncor", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})
}

func TestRegistryLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tariffs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tariffs:
  - provider: oncor
    perKwhDeliveryChargeCents: 5.6
    monthlyCustomerChargeDollars: 4.50
    effectiveDate: 2025-09-01T00:00:00Z
  - provider: lubbock
    perKwhDeliveryChargeCents: 4.4
    monthlyCustomerChargeDollars: 6.00
    effectiveDate: 2025-01-01T00:00:00Z
`), 0o600))

	r := Default()
	require.NoError(t, r.LoadFile(path))

	t.Run("later effective date shadows default", func(t *testing.T) {
		rates, err := r.Resolve("oncor", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 5.6, rates.PerKwhDeliveryChargeCents)

		// before the override the default still applies
		rates, err = r.Resolve("oncor", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 5.1, rates.PerKwhDeliveryChargeCents)
	})

	t.Run("new provider added", func(t *testing.T) {
		rates, err := r.Resolve("lubbock", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 4.4, rates.PerKwhDeliveryChargeCents)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, Default().LoadFile(filepath.Join(dir, "absent.yaml")))
	})

	t.Run("entry without provider", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("tariffs:\n  - perKwhDeliveryChargeCents: 1\n"), 0o600))
		assert.Error(t, Default().LoadFile(bad))
	})
}
