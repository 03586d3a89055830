package engine

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/config"
	"github.com/studypulse/studypulse/internal/rules"
	"github.com/studypulse/studypulse/internal/selector"
	"github.com/studypulse/studypulse/internal/snapshot"
	"github.com/studypulse/studypulse/internal/stats"
	"github.com/studypulse/studypulse/internal/store"
)

// FromConfig assembles a fully wired engine and its store from configuration.
// The caller owns the returned store and should Close it on shutdown.
func FromConfig(cfg *config.Config, provider snapshot.Provider) (*Engine, *store.Store, error) {
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.NewStore(cfg.DatabasePath, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("opening achievement store: %w", err)
	}

	var selOpts []selector.Option
	if len(cfg.CategoryWeights) > 0 {
		weights := make(map[catalog.Category]float64, len(cfg.CategoryWeights))
		for name, w := range cfg.CategoryWeights {
			weights[catalog.Category(name)] = w
		}
		selOpts = append(selOpts, selector.WithCategoryWeights(weights))
	}
	sel := selector.New(cat, st, st, logger, selOpts...)

	evaluator := rules.NewEvaluator(logger)
	aggregator := stats.NewAggregator(evaluator, st, logger,
		stats.WithNearThreshold(cfg.NearCompletionThreshold),
		stats.WithRecentLimit(cfg.RecentUnlockLimit))

	return New(cat, provider, sel, evaluator, aggregator, logger), st, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading achievement catalog: %w", err)
	}
	return cat, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
