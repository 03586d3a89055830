package rules

import (
	"time"

	"github.com/studypulse/studypulse/internal/snapshot"
)

// Numeric semantics shared by all rules. Every ratio guards the
// zero-denominator case by returning 0, never NaN or infinity.

// averageGrade is sum(score)/sum(possible)*100 over activities that have
// both fields set with positive possible points. Activities missing either
// field are excluded from numerator and denominator, never treated as zero.
// ok is false when no activity is scored.
func averageGrade(snap *snapshot.Weekly) (avg float64, ok bool) {
	if snap == nil {
		return 0, false
	}
	var scored, possible float64
	for _, a := range snap.Activities {
		if !a.Scored() {
			continue
		}
		scored += *a.Score
		possible += *a.PossiblePoints
	}
	if possible <= 0 {
		return 0, false
	}
	return scored / possible * 100, true
}

// completionRate is completed/total*100 over all activities in the snapshot,
// or 0 when the snapshot has no activities.
func completionRate(snap *snapshot.Weekly) float64 {
	if snap == nil || len(snap.Activities) == 0 {
		return 0
	}
	completed := 0
	for _, a := range snap.Activities {
		if a.Completed() {
			completed++
		}
	}
	return float64(completed) / float64(len(snap.Activities)) * 100
}

func completedCount(snap *snapshot.Weekly) int {
	if snap == nil {
		return 0
	}
	n := 0
	for _, a := range snap.Activities {
		if a.Completed() {
			n++
		}
	}
	return n
}

// pointsEarned sums raw scores over all scored activities.
func pointsEarned(snap *snapshot.Weekly) float64 {
	if snap == nil {
		return 0
	}
	var pts float64
	for _, a := range snap.Activities {
		if a.Score != nil {
			pts += *a.Score
		}
	}
	return pts
}

func distinctCompletedCourses(snap *snapshot.Weekly) int {
	if snap == nil {
		return 0
	}
	seen := map[string]struct{}{}
	for _, a := range snap.Activities {
		if a.Completed() && a.CourseID != "" {
			seen[a.CourseID] = struct{}{}
		}
	}
	return len(seen)
}

func distinctCompletedTypes(snap *snapshot.Weekly) int {
	if snap == nil {
		return 0
	}
	seen := map[snapshot.ActivityType]struct{}{}
	for _, a := range snap.Activities {
		if a.Completed() {
			seen[a.Type] = struct{}{}
		}
	}
	return len(seen)
}

// earlyShare returns the fraction of submissions made at least minHours
// before their due time, over activities that have both timestamps.
// submitted is the number of such activities; share is 0 when none exist.
func earlyShare(snap *snapshot.Weekly, minHours float64) (share float64, submitted int) {
	if snap == nil {
		return 0, 0
	}
	early := 0
	lead := time.Duration(minHours * float64(time.Hour))
	for _, a := range snap.Activities {
		if a.SubmittedAt == nil || a.DueAt == nil {
			continue
		}
		submitted++
		if !a.SubmittedAt.After(a.DueAt.Add(-lead)) {
			early++
		}
	}
	if submitted == 0 {
		return 0, 0
	}
	return float64(early) / float64(submitted), submitted
}

// activeWeeks counts consecutive weeks with at least one completed activity,
// starting from the current week and walking the previous-week chain.
func activeWeeks(snap *snapshot.Weekly) int {
	n := 0
	for s := snap; s != nil; s = s.Previous {
		if completedCount(s) == 0 {
			break
		}
		n++
	}
	return n
}

// ratioProgress maps actual/target onto a 0..100 progress value, clamped.
// A non-positive target returns 0 (zero-denominator guard).
func ratioProgress(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clampProgress(actual / target * 100)
}

func clampProgress(p float64) float64 {
	if p != p || p < 0 { // NaN guards collapse to 0
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
