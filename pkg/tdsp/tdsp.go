// Package tdsp resolves the delivery tariff a household pays its regulated
// utility. The engine consumes the resolved tariff as a constant; this
// package is the thin registry binaries use to supply it, with built-in
// defaults for the Texas TDSPs and a YAML file override.
package tdsp

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/truecost/truecost/pkg/types"
)

// Tariff is one delivery tariff effective from a given date.
type Tariff struct {
	Provider                     string    `yaml:"provider"`
	PerKwhDeliveryChargeCents    float64   `yaml:"perKwhDeliveryChargeCents"`
	MonthlyCustomerChargeDollars float64   `yaml:"monthlyCustomerChargeDollars"`
	EffectiveDate                time.Time `yaml:"effectiveDate"`
}

// Registry holds delivery tariffs grouped by provider slug.
type Registry struct {
	tariffs map[string][]Tariff
}

// Default returns a registry seeded with the current residential delivery
// tariffs of the five Texas TDSPs.
func Default() *Registry {
	r := &Registry{tariffs: make(map[string][]Tariff)}
	for _, t := range []Tariff{
		{Provider: "oncor", PerKwhDeliveryChargeCents: 5.1, MonthlyCustomerChargeDollars: 4.23, EffectiveDate: date(2025, 3, 1)},
		{Provider: "centerpoint", PerKwhDeliveryChargeCents: 4.9, MonthlyCustomerChargeDollars: 4.39, EffectiveDate: date(2025, 3, 1)},
		{Provider: "aep_central", PerKwhDeliveryChargeCents: 5.4, MonthlyCustomerChargeDollars: 4.79, EffectiveDate: date(2025, 3, 1)},
		{Provider: "aep_north", PerKwhDeliveryChargeCents: 5.2, MonthlyCustomerChargeDollars: 4.79, EffectiveDate: date(2025, 3, 1)},
		{Provider: "tnmp", PerKwhDeliveryChargeCents: 6.0, MonthlyCustomerChargeDollars: 7.85, EffectiveDate: date(2025, 3, 1)},
	} {
		r.add(t)
	}
	return r
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *Registry) add(t Tariff) {
	slug := strings.ToLower(t.Provider)
	r.tariffs[slug] = append(r.tariffs[slug], t)
	sort.Slice(r.tariffs[slug], func(i, j int) bool {
		return r.tariffs[slug][i].EffectiveDate.Before(r.tariffs[slug][j].EffectiveDate)
	})
}

// Providers returns the known provider slugs in sorted order.
func (r *Registry) Providers() []string {
	out := make([]string, 0, len(r.tariffs))
	for p := range r.tariffs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the tariff for a provider in effect at the given date: the
// latest tariff whose effective date is not after it.
func (r *Registry) Resolve(provider string, at time.Time) (types.TdspRatesApplied, error) {
	list := r.tariffs[strings.ToLower(provider)]
	if len(list) == 0 {
		return types.TdspRatesApplied{}, fmt.Errorf("unknown tdsp provider: %s", provider)
	}
	var found *Tariff
	for i := range list {
		if !list[i].EffectiveDate.After(at) {
			found = &list[i]
		}
	}
	if found == nil {
		return types.TdspRatesApplied{}, fmt.Errorf("no %s tariff effective at %s", provider, at.Format("2006-01-02"))
	}
	return types.TdspRatesApplied{
		PerKwhDeliveryChargeCents:    found.PerKwhDeliveryChargeCents,
		MonthlyCustomerChargeDollars: found.MonthlyCustomerChargeDollars,
		EffectiveDate:                found.EffectiveDate,
	}, nil
}

// LoadFile merges tariffs from a YAML file into the registry. File entries
// are appended, so a later effective date shadows the built-in default.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tariff file: %w", err)
	}
	var file struct {
		Tariffs []Tariff `yaml:"tariffs"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse tariff file %s: %w", path, err)
	}
	for _, t := range file.Tariffs {
		if t.Provider == "" {
			return fmt.Errorf("tariff file %s has an entry without a provider", path)
		}
		r.add(t)
	}
	return nil
}
