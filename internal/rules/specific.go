package rules

import (
	"time"

	"github.com/studypulse/studypulse/internal/snapshot"
)

// specificFunc evaluates one named achievement. Progress is a monotonic
// approach-to-threshold value even when unlocked is false.
type specificFunc func(snap *snapshot.Weekly) (bool, float64, map[string]any)

// specificRules is the override table keyed by achievement title. It covers
// the named achievements whose rules are too irregular for a structured
// descriptor, plus the headline catalog entries whose exact semantics are
// load-bearing for the dashboard.
var specificRules = map[string]specificFunc{
	// Engagement and volume
	"Getting Started": completedAtLeast(1),
	"Steady Progress": completedAtLeast(3),
	"Busy Bee":        completedAtLeast(5),
	"Power Week":      completedAtLeast(10),

	// Grade averages
	"Passing Week":    gradeAtLeast(70),
	"Excellence Week": gradeAtLeast(90),
	"A+ Week":         gradeAtLeast(95),
	"Perfect Week":    evalPerfectWeek,

	// Completion rates
	"Half Way There":     completionAtLeast(50),
	"High Completion":    completionAtLeast(90),
	"Perfect Completion": completionAtLeast(100),

	// Submission timing
	"On Time":           evalOnTime,
	"Early Bird":        timingShare(24, 0.8),
	"Ahead of Schedule": timingShare(48, 1.0),
	"Weekend Scholar":   evalWeekendScholar,

	// Variety
	"Multi-Course Master": coursesAtLeast(3),

	// Improvement and streaks
	"Grade Climber":      improvementAtLeast(10),
	"Consistency Counts": sustainedCompletion(70),
	"Momentum Master":    sustainedCompletion(80),

	// Type-specific
	"Exam Ace":        evalExamAce,
	"Project Pioneer": evalProjectPioneer,
}

func hasSpecificRule(title string) bool {
	_, ok := specificRules[title]
	return ok
}

func evalSpecific(title string, snap *snapshot.Weekly) (bool, float64, map[string]any) {
	return specificRules[title](snap)
}

func completedAtLeast(n int) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalCompletedCount(snap, n)
	}
}

func gradeAtLeast(threshold float64) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalGradeThreshold(snap, threshold)
	}
}

func completionAtLeast(threshold float64) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalCompletionPercent(snap, threshold)
	}
}

func coursesAtLeast(n int) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalCourseCount(snap, n)
	}
}

func improvementAtLeast(points float64) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalGradeImprovement(snap, points)
	}
}

func timingShare(hours, share float64) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		return evalSubmissionTiming(snap, hours, share)
	}
}

// evalPerfectWeek requires the weekly average grade to be exactly 100; the
// progress value is the average itself, so a 95.5 week reports 95.5.
func evalPerfectWeek(snap *snapshot.Weekly) (bool, float64, map[string]any) {
	avg, ok := averageGrade(snap)
	diag := map[string]any{DiagThreshold: 100.0, DiagActual: avg, "scored": ok}
	if !ok {
		return false, 0, diag
	}
	return avg >= 100, clampProgress(avg), diag
}

// evalOnTime unlocks on the first submission made at or before its due time.
func evalOnTime(snap *snapshot.Weekly) (bool, float64, map[string]any) {
	onTime := 0
	if snap != nil {
		for _, a := range snap.Activities {
			if a.SubmittedAt != nil && a.DueAt != nil && !a.SubmittedAt.After(*a.DueAt) {
				onTime++
			}
		}
	}
	diag := map[string]any{DiagThreshold: 1, DiagActual: onTime}
	return onTime >= 1, ratioProgress(float64(onTime), 1), diag
}

// evalWeekendScholar unlocks on any submission timestamped on a Saturday or
// Sunday (UTC, matching the week-boundary reference timezone).
func evalWeekendScholar(snap *snapshot.Weekly) (bool, float64, map[string]any) {
	weekend := 0
	if snap != nil {
		for _, a := range snap.Activities {
			if a.SubmittedAt == nil {
				continue
			}
			switch a.SubmittedAt.UTC().Weekday() {
			case time.Saturday, time.Sunday:
				weekend++
			}
		}
	}
	diag := map[string]any{DiagThreshold: 1, DiagActual: weekend}
	return weekend >= 1, ratioProgress(float64(weekend), 1), diag
}

// evalExamAce unlocks on a completed exam scored at 90% or better; progress
// tracks the best exam ratio seen this week.
func evalExamAce(snap *snapshot.Weekly) (bool, float64, map[string]any) {
	var best float64
	exams := 0
	if snap != nil {
		for _, a := range snap.Activities {
			if a.Type != snapshot.TypeExam || !a.Scored() {
				continue
			}
			exams++
			ratio := *a.Score / *a.PossiblePoints * 100
			if ratio > best {
				best = ratio
			}
		}
	}
	diag := map[string]any{DiagThreshold: 90.0, DiagActual: best, "exams": exams}
	if exams == 0 {
		return false, 0, diag
	}
	return best >= 90, ratioProgress(best, 90), diag
}

// evalProjectPioneer unlocks on any completed project.
func evalProjectPioneer(snap *snapshot.Weekly) (bool, float64, map[string]any) {
	projects := 0
	if snap != nil {
		for _, a := range snap.Activities {
			if a.Type == snapshot.TypeProject && a.Completed() {
				projects++
			}
		}
	}
	diag := map[string]any{DiagThreshold: 1, DiagActual: projects}
	return projects >= 1, ratioProgress(float64(projects), 1), diag
}

// sustainedCompletion requires the completion rate to meet the threshold in
// both the current and the previous week. Progress tracks the weaker week.
func sustainedCompletion(threshold float64) specificFunc {
	return func(snap *snapshot.Weekly) (bool, float64, map[string]any) {
		diag := map[string]any{DiagThreshold: threshold}
		if snap == nil || snap.Previous == nil {
			diag[DiagInsufficient] = true
			return false, 0, diag
		}
		curr := completionRate(snap)
		prev := completionRate(snap.Previous)
		weaker := curr
		if prev < curr {
			weaker = prev
		}
		diag[DiagActual] = weaker
		diag["currentRate"] = curr
		diag["previousRate"] = prev
		ok := len(snap.Activities) > 0 && len(snap.Previous.Activities) > 0 &&
			curr >= threshold && prev >= threshold
		return ok, ratioProgress(weaker, threshold), diag
	}
}
