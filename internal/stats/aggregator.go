// Package stats aggregates rule evaluation results across the whole catalog
// into the dashboard summary: totals, per-category and per-tier breakdowns,
// near-completion candidates, and recent unlocks.
package stats

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/rules"
	"github.com/studypulse/studypulse/internal/snapshot"
	"github.com/studypulse/studypulse/pkg/metrics"
)

// UnlockBridge records permanent unlocks. Re-recording an already unlocked
// achievement must be a no-op returning created=false.
type UnlockBridge interface {
	RecordUnlock(ctx context.Context, userID string, def catalog.Definition) (bool, error)
}

// TallyBreakdown counts achievements in one slice of the catalog.
type TallyBreakdown struct {
	Total      int
	Unlocked   int
	InProgress int
}

// Statistics is the full dashboard summary for one user and week.
type Statistics struct {
	Total      int
	Unlocked   int
	InProgress int
	ByCategory map[catalog.Category]TallyBreakdown
	ByTier     map[catalog.Tier]TallyBreakdown
	// NearCompletion holds locked achievements at or above the near-completion
	// threshold, highest progress first.
	NearCompletion []rules.Result
	// RecentUnlocks holds this evaluation's unlocked achievements, capped at
	// the configured limit.
	RecentUnlocks []rules.Result
	Results       []rules.Result
}

// Aggregator evaluates the whole catalog and rolls the results up.
type Aggregator struct {
	evaluator     *rules.Evaluator
	bridge        UnlockBridge
	logger        *zap.Logger
	metrics       *metrics.Manager
	nearThreshold float64
	recentLimit   int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNearThreshold sets the minimum progress for NearCompletion inclusion.
func WithNearThreshold(threshold float64) Option {
	return func(a *Aggregator) {
		if threshold > 0 {
			a.nearThreshold = threshold
		}
	}
}

// WithRecentLimit caps RecentUnlocks.
func WithRecentLimit(limit int) Option {
	return func(a *Aggregator) {
		if limit > 0 {
			a.recentLimit = limit
		}
	}
}

// NewAggregator creates an aggregator. bridge may be nil, in which case
// unlocks are summarized but not persisted.
func NewAggregator(evaluator *rules.Evaluator, bridge UnlockBridge, logger *zap.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{
		evaluator:     evaluator,
		bridge:        bridge,
		logger:        logger,
		metrics:       metrics.Default(),
		nearThreshold: 75,
		recentLimit:   5,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize evaluates every catalog entry against the snapshot and builds the
// summary. Unlocks are forwarded to the bridge; bridge failures are logged
// and skipped so one storage error never hides the rest of the dashboard.
func (a *Aggregator) Summarize(ctx context.Context, cat *catalog.Catalog, snap *snapshot.Weekly) Statistics {
	results := a.evaluator.EvaluateAll(cat, snap)

	stats := Statistics{
		Total:      len(results),
		ByCategory: map[catalog.Category]TallyBreakdown{},
		ByTier:     map[catalog.Tier]TallyBreakdown{},
		Results:    results,
	}

	unlocked := lo.Filter(results, func(r rules.Result, _ int) bool { return r.Unlocked })
	inProgress := lo.Filter(results, func(r rules.Result, _ int) bool {
		return !r.Unlocked && r.Progress > 0
	})
	stats.Unlocked = len(unlocked)
	stats.InProgress = len(inProgress)

	for _, r := range results {
		cat := stats.ByCategory[r.Achievement.Category]
		tier := stats.ByTier[r.Achievement.Tier]
		cat.Total++
		tier.Total++
		switch {
		case r.Unlocked:
			cat.Unlocked++
			tier.Unlocked++
		case r.Progress > 0:
			cat.InProgress++
			tier.InProgress++
		}
		stats.ByCategory[r.Achievement.Category] = cat
		stats.ByTier[r.Achievement.Tier] = tier
	}

	near := lo.Filter(results, func(r rules.Result, _ int) bool {
		return !r.Unlocked && r.Progress >= a.nearThreshold
	})
	sort.SliceStable(near, func(i, j int) bool { return near[i].Progress > near[j].Progress })
	stats.NearCompletion = near

	stats.RecentUnlocks = lo.Slice(unlocked, 0, a.recentLimit)

	if a.bridge != nil && snap != nil {
		for _, r := range unlocked {
			created, err := a.bridge.RecordUnlock(ctx, snap.UserID, r.Achievement)
			if err != nil {
				a.logger.Error("recording unlock failed",
					zap.String("userID", snap.UserID),
					zap.String("title", r.Achievement.Title),
					zap.Error(err))
				continue
			}
			a.metrics.RecordUnlock(created)
			if created {
				a.logger.Info("achievement unlocked",
					zap.String("userID", snap.UserID),
					zap.String("title", r.Achievement.Title),
					zap.Int("points", r.Achievement.Points))
			}
		}
	}

	return stats
}

// TotalPoints sums the point values of this evaluation's unlocked results.
func TotalPoints(stats Statistics) int {
	unlocked := lo.Filter(stats.Results, func(r rules.Result, _ int) bool { return r.Unlocked })
	return lo.SumBy(unlocked, func(r rules.Result) int {
		return r.Achievement.Points
	})
}
