// Package store persists weekly selections, the per-user used-title ledger,
// and unlock records in SQLite via GORM. It implements the selector's store
// interfaces and the aggregator's unlock bridge.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/selector"
)

// SelectionRecord is one persisted weekly selection. Only titles are stored;
// the catalog resolves them back to full definitions on read.
type SelectionRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	UserID      string    `gorm:"uniqueIndex:idx_user_week"`
	WeekStart   time.Time `gorm:"uniqueIndex:idx_user_week"`
	WeekEnd     time.Time
	SelectedAt  time.Time
	EasyTitle   string
	MediumTitle string
	HardTitle   string
}

// LedgerEntry marks one title as used for one user.
type LedgerEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	UserID string `gorm:"uniqueIndex:idx_user_title"`
	Title  string `gorm:"uniqueIndex:idx_user_title"`
}

// UnlockRecord is one permanently unlocked achievement for one user.
type UnlockRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	UserID     string `gorm:"uniqueIndex:idx_user_unlock"`
	Title      string `gorm:"uniqueIndex:idx_user_unlock"`
	UnlockedAt time.Time
	Points     int
	Notified   bool
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db  *gorm.DB
	cat *catalog.Catalog
}

// NewStore opens (or creates) the SQLite database at dbFilePath and runs
// migrations. The catalog is needed to resolve stored titles back to
// definitions.
func NewStore(dbFilePath string, cat *catalog.Catalog) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db, cat)
}

// NewStoreWithDB wraps an existing GORM connection, running migrations on it.
func NewStoreWithDB(db *gorm.DB, cat *catalog.Catalog) (*Store, error) {
	if err := db.AutoMigrate(&SelectionRecord{}, &LedgerEntry{}, &UnlockRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db, cat: cat}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetSelection returns the stored selection for the user and week, or nil
// when none exists.
func (s *Store) GetSelection(ctx context.Context, userID string, weekStart time.Time) (*selector.WeeklySelection, error) {
	var rec SelectionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.toSelection(&rec)
}

// CreateSelection stores a selection with create-if-absent semantics. When a
// record for the (userID, weekStart) key already exists, the existing
// selection is returned and the candidate is discarded.
func (s *Store) CreateSelection(ctx context.Context, sel *selector.WeeklySelection) (*selector.WeeklySelection, error) {
	rec := SelectionRecord{
		UserID:      sel.UserID,
		WeekStart:   sel.WeekStart,
		WeekEnd:     sel.WeekEnd,
		SelectedAt:  sel.SelectedAt,
		EasyTitle:   sel.Easy.Title,
		MediumTitle: sel.Medium.Title,
		HardTitle:   sel.Hard.Title,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		// Unique-index conflict: a concurrent writer created this week's
		// selection first. Read it back and return theirs.
		existing, getErr := s.GetSelection(ctx, sel.UserID, sel.WeekStart)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return sel, nil
}

// UsedTitles returns every title in the user's ledger.
func (s *Store) UsedTitles(ctx context.Context, userID string) ([]string, error) {
	var titles []string
	err := s.db.WithContext(ctx).
		Model(&LedgerEntry{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// AppendTitles adds titles to the user's ledger. Re-appending an existing
// title is a no-op, keeping retries safe.
func (s *Store) AppendTitles(ctx context.Context, userID string, titles []string) error {
	for _, title := range titles {
		entry := LedgerEntry{UserID: userID, Title: title}
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			var count int64
			if s.db.WithContext(ctx).
				Model(&LedgerEntry{}).
				Where("user_id = ? AND title = ?", userID, title).
				Count(&count); count > 0 {
				continue
			}
			return err
		}
	}
	return nil
}

// ClearTitles removes every ledger entry for the user.
func (s *Store) ClearTitles(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&LedgerEntry{}).Error
}

// RecordUnlock persists a permanent unlock. It is idempotent: the first call
// for a (userID, title) pair creates the record and returns created=true,
// later calls return created=false with no error.
func (s *Store) RecordUnlock(ctx context.Context, userID string, def catalog.Definition) (bool, error) {
	var existing UnlockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", userID, def.Title).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	rec := UnlockRecord{
		UserID:     userID,
		Title:      def.Title,
		UnlockedAt: time.Now().UTC(),
		Points:     def.Points,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		// Lost a race on the unique index; the unlock exists either way.
		var count int64
		if s.db.WithContext(ctx).
			Model(&UnlockRecord{}).
			Where("user_id = ? AND title = ?", userID, def.Title).
			Count(&count); count > 0 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unlocks returns the user's unlock records, most recent first.
func (s *Store) Unlocks(ctx context.Context, userID string) ([]UnlockRecord, error) {
	var recs []UnlockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// MarkNotified flags an unlock record as surfaced to the user.
func (s *Store) MarkNotified(ctx context.Context, userID, title string) error {
	return s.db.WithContext(ctx).
		Model(&UnlockRecord{}).
		Where("user_id = ? AND title = ?", userID, title).
		Update("notified", true).Error
}

func (s *Store) toSelection(rec *SelectionRecord) (*selector.WeeklySelection, error) {
	easy, ok := s.cat.ByTitle(rec.EasyTitle)
	if !ok {
		return nil, &UnknownTitleError{Title: rec.EasyTitle}
	}
	medium, ok := s.cat.ByTitle(rec.MediumTitle)
	if !ok {
		return nil, &UnknownTitleError{Title: rec.MediumTitle}
	}
	hard, ok := s.cat.ByTitle(rec.HardTitle)
	if !ok {
		return nil, &UnknownTitleError{Title: rec.HardTitle}
	}
	return &selector.WeeklySelection{
		UserID:     rec.UserID,
		WeekStart:  rec.WeekStart,
		WeekEnd:    rec.WeekEnd,
		SelectedAt: rec.SelectedAt,
		Easy:       easy,
		Medium:     medium,
		Hard:       hard,
	}, nil
}
