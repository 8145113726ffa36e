package pipeline

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"infogen/brand"
	"infogen/config"
	"infogen/llm"
	"infogen/measure"
	"infogen/meter"
	"infogen/reason"
	"infogen/store"
)

// FromConfig assembles the production pipeline: shared or in-process cache,
// SQLite records, signed artifact store, gateway, reasoning, metering. The
// caller owns the result and must Close it.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var cache store.Cache
	if url := string(cfg.Cache.RedisURL); url != "" {
		r, err := store.NewRedis(url)
		if err != nil {
			return nil, fmt.Errorf("unable to reach shared cache: %w", err)
		}
		cache = r
		log.Debug("Using shared redis cache")
	} else {
		cache = store.NewMemory()
	}

	records, err := store.OpenRecords(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open record store: %w", err)
	}

	key := os.Getenv(cfg.Artifacts.SigningKeyEnv)
	if key == "" {
		_ = records.Close()
		return nil, fmt.Errorf("artifact signing key is empty, set %s", cfg.Artifacts.SigningKeyEnv)
	}
	artifacts, err := store.NewArtifacts(cfg.Artifacts.StorageURL, store.NewSigner([]byte(key)))
	if err != nil {
		_ = records.Close()
		return nil, fmt.Errorf("unable to open artifact store: %w", err)
	}

	gw := llm.New(llm.Options{
		Chains:    cfg.Models.Chains(),
		Cache:     cache,
		CacheTTL:  cfg.LLM.CacheTTL(),
		BudgetUSD: cfg.LLM.CostBudgetDailyUSD,
		Log:       log,
	})

	svc, err := reason.New(gw, log)
	if err != nil {
		_ = records.Close()
		return nil, err
	}

	return New(Options{
		Reasoner: svc,
		Brands:   brand.NewExtractor(log),
		Meter: meter.New(meter.Options{
			Plans:   cfg.Plans.Table(),
			Cache:   cache,
			Records: records,
			Log:     log,
		}),
		Measurer:  measure.New(cfg.Fonts.FallbackChain...),
		Artifacts: artifacts,
		Records:   records,
		Log:       log,
	}), nil
}
