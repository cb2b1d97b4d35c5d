package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/truecost/truecost/pkg/engine"
	"github.com/truecost/truecost/pkg/log"
	"github.com/truecost/truecost/pkg/tdsp"
	"github.com/truecost/truecost/pkg/types"

	"github.com/levenlabs/go-lflag"
)

func main() {
	planPath := lflag.String("plan", "", "Path to the rate-structure blob (JSON)")
	usagePath := lflag.String("usage", "", "Path to usage buckets by month (JSON, optional)")
	annualKwh := new(float64)
	lflag.JSON(annualKwh, "annual-kwh", 12000.0, "Annual usage in kWh")
	months := lflag.Int("months", 12, "Number of billing months to estimate")
	provider := lflag.String("tdsp", "oncor", "TDSP provider slug for delivery rates")
	tariffPath := lflag.String("tdsp-file", "", "Optional YAML file of tariff overrides")
	asOf := lflag.String("as-of", "", "Effective date for the delivery tariff (YYYY-MM-DD, default today)")
	indexedOK := lflag.Bool("allow-indexed-approx", false, "Allow LOW-confidence estimates for indexed plans")

	lflag.Configure()

	if err := log.Configure(); err != nil {
		panic(err)
	}

	ctx := context.Background()

	in, err := buildInput(*planPath, *usagePath, *annualKwh, *months, *provider, *tariffPath, *asOf, *indexedOK)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "invalid arguments", "error", err)
		os.Exit(1)
	}

	est := engine.Estimate(ctx, in)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(est); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to encode estimate", "error", err)
		os.Exit(1)
	}
	if !est.Computable() {
		os.Exit(2)
	}
}

func buildInput(planPath, usagePath string, annualKwh float64, months int, provider, tariffPath, asOf string, indexedOK bool) (engine.Input, error) {
	var in engine.Input

	if planPath == "" {
		return in, fmt.Errorf("--plan is required")
	}
	planData, err := os.ReadFile(planPath)
	if err != nil {
		return in, fmt.Errorf("failed to read plan: %w", err)
	}
	if err := json.Unmarshal(planData, &in.Plan); err != nil {
		return in, fmt.Errorf("failed to parse plan: %w", err)
	}

	if usagePath != "" {
		usageData, err := os.ReadFile(usagePath)
		if err != nil {
			return in, fmt.Errorf("failed to read usage: %w", err)
		}
		if err := json.Unmarshal(usageData, &in.Usage); err != nil {
			return in, fmt.Errorf("failed to parse usage: %w", err)
		}
		for m := range in.Usage {
			if !types.ValidMonthKey(m) {
				return in, fmt.Errorf("invalid month key in usage: %s", m)
			}
		}
	}

	in.AnnualKwh = annualKwh
	in.Months = months
	in.AllowIndexedApproximation = indexedOK

	at := time.Now().UTC()
	if asOf != "" {
		at, err = time.Parse("2006-01-02", asOf)
		if err != nil {
			return in, fmt.Errorf("invalid --as-of: %w", err)
		}
	}

	registry := tdsp.Default()
	if tariffPath != "" {
		if err := registry.LoadFile(tariffPath); err != nil {
			return in, err
		}
	}
	in.Tdsp, err = registry.Resolve(provider, at)
	if err != nil {
		return in, err
	}

	return in, nil
}
