// Package selector resolves the deterministic-for-the-week trio of
// achievements (one per difficulty tier) for each user, tracking previously
// selected titles in a per-user ledger so nothing repeats until a tier's
// pool is exhausted.
package selector

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/snapshot"
	"github.com/studypulse/studypulse/pkg/metrics"
)

// Selector creates and resolves weekly selections. The read-modify-write
// cycle over the ledger is serialized per (userID, weekStart) with a keyed
// mutex on top of the store's create-if-absent semantics, so concurrent
// requests for the same week observe one trio.
type Selector struct {
	cat        *catalog.Catalog
	selections SelectionStore
	ledger     LedgerStore
	weights    map[catalog.Category]float64
	logger     *zap.Logger
	metrics    *metrics.Manager

	rngMu sync.Mutex
	rng   *rand.Rand

	keysMu sync.Mutex
	keys   map[string]*sync.Mutex
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand injects the random source, letting tests assert distribution
// shape and reproducibility.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithCategoryWeights overrides the category selection bias. Non-positive
// weights are treated as 1 at draw time; a weight can bias, never exclude.
func WithCategoryWeights(weights map[catalog.Category]float64) Option {
	return func(s *Selector) {
		if len(weights) > 0 {
			s.weights = weights
		}
	}
}

// New creates a selector over the given catalog and stores. A nil logger
// disables logging.
func New(cat *catalog.Catalog, selections SelectionStore, ledger LedgerStore, logger *zap.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Selector{
		cat:        cat,
		selections: selections,
		ledger:     ledger,
		weights:    DefaultCategoryWeights,
		logger:     logger,
		metrics:    metrics.Default(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		keys:       map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the weekly selection for the user's calendar week around
// referenceDate, creating and persisting it on first access. Repeated calls
// within the same week return the identical trio.
func (s *Selector) Resolve(ctx context.Context, userID string, referenceDate time.Time) (*WeeklySelection, error) {
	weekStart := snapshot.WeekStart(referenceDate)
	weekEnd := snapshot.WeekEnd(weekStart)

	// Fast path: the selection already exists.
	if sel, err := s.selections.GetSelection(ctx, userID, weekStart); err != nil {
		return nil, fmt.Errorf("loading weekly selection: %w", err)
	} else if sel != nil {
		return sel, nil
	}

	unlock := s.lockKey(userID, weekStart)
	defer unlock()

	// Re-check under the lock; a concurrent request may have won the race.
	if sel, err := s.selections.GetSelection(ctx, userID, weekStart); err != nil {
		return nil, fmt.Errorf("loading weekly selection: %w", err)
	} else if sel != nil {
		return sel, nil
	}

	used, err := s.ledger.UsedTitles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading used-title ledger: %w", err)
	}

	pools, reset, err := s.buildPools(used)
	if err != nil {
		return nil, err
	}
	if reset {
		if err := s.ledger.ClearTitles(ctx, userID); err != nil {
			return nil, fmt.Errorf("resetting used-title ledger: %w", err)
		}
		s.logger.Info("achievement pool exhausted, ledger reset",
			zap.String("userID", userID),
			zap.Time("weekStart", weekStart))
		s.metrics.RecordLedgerReset()
	}

	sel := &WeeklySelection{
		UserID:     userID,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		SelectedAt: time.Now().UTC(),
		Easy:       s.pick(pools[catalog.TierEasy]),
		Medium:     s.pick(pools[catalog.TierMedium]),
		Hard:       s.pick(pools[catalog.TierHard]),
	}

	stored, err := s.selections.CreateSelection(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("persisting weekly selection: %w", err)
	}
	if stored != sel {
		// Another writer created the selection first; its trio wins and the
		// ledger must not record ours.
		return stored, nil
	}

	if err := s.ledger.AppendTitles(ctx, userID, sel.Titles()); err != nil {
		return nil, fmt.Errorf("appending to used-title ledger: %w", err)
	}

	s.logger.Info("weekly selection created",
		zap.String("userID", userID),
		zap.Time("weekStart", weekStart),
		zap.Strings("titles", sel.Titles()))
	s.metrics.RecordSelectionCreated()

	return sel, nil
}

// buildPools filters each tier's catalog entries through the used-title
// ledger. When any tier's filtered pool is empty the ledger is reset as a
// whole and all three pools are rebuilt from the full catalog; the reset is
// deliberately all-or-nothing across tiers to keep ledger semantics simple.
func (s *Selector) buildPools(used []string) (map[catalog.Tier][]catalog.Definition, bool, error) {
	usedSet := make(map[string]struct{}, len(used))
	for _, title := range used {
		usedSet[title] = struct{}{}
	}

	full := map[catalog.Tier][]catalog.Definition{}
	for _, tier := range catalog.Tiers {
		defs := s.cat.ByTier(tier)
		if len(defs) == 0 {
			// A validated catalog cannot reach this; fail loudly instead of
			// letting the random pick panic.
			return nil, false, fmt.Errorf("%w: %q", catalog.ErrTierEmpty, tier)
		}
		full[tier] = defs
	}

	pools := map[catalog.Tier][]catalog.Definition{}
	for _, tier := range catalog.Tiers {
		var pool []catalog.Definition
		for _, def := range full[tier] {
			if _, seen := usedSet[def.Title]; !seen {
				pool = append(pool, def)
			}
		}
		if len(pool) == 0 {
			return full, true, nil
		}
		pools[tier] = pool
	}
	return pools, false, nil
}

func (s *Selector) pick(pool []catalog.Definition) catalog.Definition {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return weightedPick(pool, s.weights, s.rng)
}

// lockKey serializes selection creation per (userID, weekStart).
func (s *Selector) lockKey(userID string, weekStart time.Time) func() {
	key := userID + "|" + weekStart.Format("2006-01-02")
	s.keysMu.Lock()
	mu, ok := s.keys[key]
	if !ok {
		mu = &sync.Mutex{}
		s.keys[key] = mu
	}
	s.keysMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
