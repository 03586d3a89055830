package snapshot

import "time"

// Week boundaries are computed in UTC everywhere. Selection keys and snapshot
// filtering both depend on this function agreeing with itself exactly; mixing
// timezones here causes off-by-one-day selection drift.

// WeekStart normalizes a date to the most recent Monday at 00:00:00.000 UTC.
// A Sunday input maps six days back, not forward.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// Weekday: Sunday=0 .. Saturday=6; Monday-anchored offset.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the end of the week that starts at weekStart: the following
// Sunday at 23:59:59.999 UTC.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)
}

// SameWeek reports whether two dates fall in the same calendar week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}
