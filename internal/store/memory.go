package store

import (
	"context"
	"sync"
	"time"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/selector"
)

// Memory is an in-memory store with the same semantics as the SQLite Store.
// It backs tests and embedders that do not want a database file.
type Memory struct {
	mu         sync.Mutex
	selections map[string]*selector.WeeklySelection
	ledgers    map[string][]string
	unlocks    map[string]map[string]UnlockRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		selections: map[string]*selector.WeeklySelection{},
		ledgers:    map[string][]string{},
		unlocks:    map[string]map[string]UnlockRecord{},
	}
}

func selectionKey(userID string, weekStart time.Time) string {
	return userID + "|" + weekStart.UTC().Format("2006-01-02")
}

// GetSelection returns the stored selection for the key, or nil when absent.
func (m *Memory) GetSelection(_ context.Context, userID string, weekStart time.Time) (*selector.WeeklySelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sel, ok := m.selections[selectionKey(userID, weekStart)]; ok {
		cp := *sel
		return &cp, nil
	}
	return nil, nil
}

// CreateSelection stores the selection unless one already exists for the key,
// in which case the existing one is returned.
func (m *Memory) CreateSelection(_ context.Context, sel *selector.WeeklySelection) (*selector.WeeklySelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := selectionKey(sel.UserID, sel.WeekStart)
	if existing, ok := m.selections[key]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *sel
	m.selections[key] = &cp
	return sel, nil
}

// UsedTitles returns the user's ledger in append order.
func (m *Memory) UsedTitles(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	titles := m.ledgers[userID]
	out := make([]string, len(titles))
	copy(out, titles)
	return out, nil
}

// AppendTitles adds titles to the user's ledger, skipping duplicates.
func (m *Memory) AppendTitles(_ context.Context, userID string, titles []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{}, len(m.ledgers[userID]))
	for _, t := range m.ledgers[userID] {
		seen[t] = struct{}{}
	}
	for _, t := range titles {
		if _, dup := seen[t]; dup {
			continue
		}
		m.ledgers[userID] = append(m.ledgers[userID], t)
		seen[t] = struct{}{}
	}
	return nil
}

// ClearTitles empties the user's ledger.
func (m *Memory) ClearTitles(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ledgers, userID)
	return nil
}

// RecordUnlock records an unlock idempotently, mirroring Store.RecordUnlock.
func (m *Memory) RecordUnlock(_ context.Context, userID string, def catalog.Definition) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byTitle, ok := m.unlocks[userID]
	if !ok {
		byTitle = map[string]UnlockRecord{}
		m.unlocks[userID] = byTitle
	}
	if _, exists := byTitle[def.Title]; exists {
		return false, nil
	}
	byTitle[def.Title] = UnlockRecord{
		UserID:     userID,
		Title:      def.Title,
		UnlockedAt: time.Now().UTC(),
		Points:     def.Points,
	}
	return true, nil
}

// Unlocks returns the user's unlock records in unspecified order.
func (m *Memory) Unlocks(_ context.Context, userID string) ([]UnlockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []UnlockRecord
	for _, rec := range m.unlocks[userID] {
		out = append(out, rec)
	}
	return out, nil
}
