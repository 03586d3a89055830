package selector

import (
	"context"
	"time"

	"github.com/studypulse/studypulse/internal/catalog"
)

// WeeklySelection is the trio of achievements chosen for one user and one
// calendar week: exactly one entry per tier, all titles distinct. A selection
// is created once per (userID, weekStart) and is immutable afterwards.
type WeeklySelection struct {
	UserID     string
	WeekStart  time.Time
	WeekEnd    time.Time
	SelectedAt time.Time
	Easy       catalog.Definition
	Medium     catalog.Definition
	Hard       catalog.Definition
}

// Titles returns the three selected titles in tier order.
func (s WeeklySelection) Titles() []string {
	return []string{s.Easy.Title, s.Medium.Title, s.Hard.Title}
}

// ByTier returns the selected definition for a tier.
func (s WeeklySelection) ByTier(tier catalog.Tier) catalog.Definition {
	switch tier {
	case catalog.TierMedium:
		return s.Medium
	case catalog.TierHard:
		return s.Hard
	default:
		return s.Easy
	}
}

// Definitions returns the trio in tier order.
func (s WeeklySelection) Definitions() []catalog.Definition {
	return []catalog.Definition{s.Easy, s.Medium, s.Hard}
}

// SelectionStore persists weekly selections keyed by (userID, weekStart).
type SelectionStore interface {
	// GetSelection returns the stored selection for the key, or nil when
	// none exists.
	GetSelection(ctx context.Context, userID string, weekStart time.Time) (*WeeklySelection, error)
	// CreateSelection stores the selection with create-if-absent semantics:
	// when a selection for the key already exists, the existing one is
	// returned unchanged and the candidate is discarded.
	CreateSelection(ctx context.Context, sel *WeeklySelection) (*WeeklySelection, error)
}

// LedgerStore persists the per-user set of previously selected titles.
type LedgerStore interface {
	UsedTitles(ctx context.Context, userID string) ([]string, error)
	AppendTitles(ctx context.Context, userID string, titles []string) error
	ClearTitles(ctx context.Context, userID string) error
}
