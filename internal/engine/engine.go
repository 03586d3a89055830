// Package engine wires the catalog, selector, evaluator, and aggregator into
// the two entry points embedders call: WeekState for the weekly challenge
// trio and Dashboard for the full achievement summary.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/rules"
	"github.com/studypulse/studypulse/internal/selector"
	"github.com/studypulse/studypulse/internal/snapshot"
	"github.com/studypulse/studypulse/internal/stats"
	"github.com/studypulse/studypulse/pkg/metrics"
)

// WeekState is the resolved weekly trio together with each challenge's
// evaluation against the current snapshot. Results are in tier order.
type WeekState struct {
	Selection *selector.WeeklySelection
	Snapshot  *snapshot.Weekly
	Results   []rules.Result
}

// Engine is the top-level achievement engine.
type Engine struct {
	cat        *catalog.Catalog
	provider   snapshot.Provider
	selector   *selector.Selector
	evaluator  *rules.Evaluator
	aggregator *stats.Aggregator
	logger     *zap.Logger
	metrics    *metrics.Manager
}

// New assembles an engine from its parts. A nil logger disables logging.
func New(cat *catalog.Catalog, provider snapshot.Provider, sel *selector.Selector, evaluator *rules.Evaluator, aggregator *stats.Aggregator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cat:        cat,
		provider:   provider,
		selector:   sel,
		evaluator:  evaluator,
		aggregator: aggregator,
		logger:     logger,
		metrics:    metrics.Default(),
	}
}

// WeekState resolves the user's weekly selection and evaluates its three
// challenges against the week around referenceDate. The previous week's
// snapshot is stitched in for improvement and streak rules; failing to fetch
// it degrades those rules to insufficient history instead of failing the
// request.
func (e *Engine) WeekState(ctx context.Context, userID string, referenceDate time.Time) (*WeekState, error) {
	sel, err := e.selector.Resolve(ctx, userID, referenceDate)
	if err != nil {
		return nil, err
	}

	snap, err := e.fetch(ctx, userID, referenceDate)
	if err != nil {
		return nil, err
	}

	results := make([]rules.Result, 0, 3)
	for _, def := range sel.Definitions() {
		results = append(results, e.evaluator.Evaluate(def, snap))
	}

	return &WeekState{
		Selection: sel,
		Snapshot:  snap,
		Results:   results,
	}, nil
}

// Dashboard evaluates the entire catalog against the week around
// referenceDate and returns the aggregated summary.
func (e *Engine) Dashboard(ctx context.Context, userID string, referenceDate time.Time) (stats.Statistics, error) {
	snap, err := e.fetch(ctx, userID, referenceDate)
	if err != nil {
		return stats.Statistics{}, err
	}
	return e.aggregator.Summarize(ctx, e.cat, snap), nil
}

// fetch loads the current week's snapshot and stitches the previous week
// onto it. The current week is load-bearing; the previous week is best
// effort.
func (e *Engine) fetch(ctx context.Context, userID string, referenceDate time.Time) (*snapshot.Weekly, error) {
	weekStart := snapshot.WeekStart(referenceDate)
	weekEnd := snapshot.WeekEnd(weekStart)

	snap, err := e.provider.WeeklySnapshot(ctx, userID, weekStart, weekEnd)
	if err != nil {
		e.metrics.RecordSnapshotFailure()
		return nil, &snapshot.FetchError{UserID: userID, Err: err}
	}

	if snap.Previous == nil {
		prevStart := weekStart.AddDate(0, 0, -7)
		prevEnd := snapshot.WeekEnd(prevStart)
		prev, err := e.provider.WeeklySnapshot(ctx, userID, prevStart, prevEnd)
		if err != nil {
			e.logger.Warn("previous-week snapshot unavailable",
				zap.String("userID", userID),
				zap.Time("weekStart", prevStart),
				zap.Error(err))
		} else {
			snap.Previous = prev
		}
	}

	return snap, nil
}
