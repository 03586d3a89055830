package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to its monday",
			in:   time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself at midnight",
			in:   time.Date(2026, 3, 16, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps to the preceding monday",
			in:   time.Date(2026, 3, 22, 1, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-utc input is normalized to utc",
			in:   time.Date(2026, 3, 16, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestWeekStartAlwaysMonday(t *testing.T) {
	day := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		got := WeekStart(day.AddDate(0, 0, i))
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestWeekEnd(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	end := WeekEnd(start)

	assert.Equal(t, time.Date(2026, 3, 22, 23, 59, 59, 999_000_000, time.UTC), end)
	assert.True(t, end.Before(start.AddDate(0, 0, 7)))
}

func TestSameWeek(t *testing.T) {
	assert.True(t, SameWeek(
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 22, 23, 0, 0, 0, time.UTC),
	))
	assert.False(t, SameWeek(
		time.Date(2026, 3, 22, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 23, 1, 0, 0, 0, time.UTC),
	))
}
