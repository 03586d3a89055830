package rules

import (
	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/snapshot"
)

// ruleParams is the normalized form a rule takes before execution, whether it
// came from a structured descriptor or from the free-text classifier.
type ruleParams struct {
	kind  catalog.RuleKind
	value float64
	unit  string
	// share is the required fraction of submissions for submission_timing
	// rules (0..1]; 1 means every submission.
	share float64
}

func paramsFromRule(r catalog.Rule) ruleParams {
	p := ruleParams{kind: r.Kind, value: r.Value, unit: r.Unit, share: 1}
	if r.Kind == catalog.RuleSubmissionTiming {
		// Descriptors carry the lead time in Value; the required share is
		// always "every submission" unless a specific predicate overrides.
		p.share = 1
	}
	return p
}

// evalParams executes one archetype against a snapshot.
func evalParams(p ruleParams, snap *snapshot.Weekly) (bool, float64, map[string]any) {
	switch p.kind {
	case catalog.RuleGradeThreshold:
		return evalGradeThreshold(snap, p.value)
	case catalog.RuleCompletionPercent:
		return evalCompletionPercent(snap, p.value)
	case catalog.RuleSubmissionTiming:
		return evalSubmissionTiming(snap, p.value, p.share)
	case catalog.RuleCourseCount:
		return evalCourseCount(snap, int(p.value))
	case catalog.RuleTypeVariety:
		return evalTypeVariety(snap, int(p.value))
	case catalog.RuleGradeImprovement:
		return evalGradeImprovement(snap, p.value)
	case catalog.RuleConsecutiveWeeks:
		return evalConsecutiveWeeks(snap, int(p.value))
	case catalog.RuleCountThreshold:
		if p.unit == "points" {
			return evalPointsEarned(snap, p.value)
		}
		return evalCompletedCount(snap, int(p.value))
	}
	return false, 0, map[string]any{DiagUnrecognized: true}
}

func evalGradeThreshold(snap *snapshot.Weekly, threshold float64) (bool, float64, map[string]any) {
	avg, ok := averageGrade(snap)
	diag := map[string]any{DiagThreshold: threshold, DiagActual: avg, "scored": ok}
	if !ok {
		return false, 0, diag
	}
	return avg >= threshold, ratioProgress(avg, threshold), diag
}

func evalCompletionPercent(snap *snapshot.Weekly, threshold float64) (bool, float64, map[string]any) {
	rate := completionRate(snap)
	diag := map[string]any{DiagThreshold: threshold, DiagActual: rate}
	if snap == nil || len(snap.Activities) == 0 {
		return false, 0, diag
	}
	return rate >= threshold, ratioProgress(rate, threshold), diag
}

func evalSubmissionTiming(snap *snapshot.Weekly, minHours, requiredShare float64) (bool, float64, map[string]any) {
	share, submitted := earlyShare(snap, minHours)
	diag := map[string]any{
		DiagThreshold: requiredShare,
		DiagActual:    share,
		"minHours":    minHours,
		"submitted":   submitted,
	}
	if submitted == 0 {
		return false, 0, diag
	}
	return share >= requiredShare, ratioProgress(share, requiredShare), diag
}

func evalCourseCount(snap *snapshot.Weekly, required int) (bool, float64, map[string]any) {
	n := distinctCompletedCourses(snap)
	diag := map[string]any{DiagThreshold: required, DiagActual: n}
	return n >= required, ratioProgress(float64(n), float64(required)), diag
}

func evalTypeVariety(snap *snapshot.Weekly, required int) (bool, float64, map[string]any) {
	n := distinctCompletedTypes(snap)
	diag := map[string]any{DiagThreshold: required, DiagActual: n}
	return n >= required, ratioProgress(float64(n), float64(required)), diag
}

func evalGradeImprovement(snap *snapshot.Weekly, required float64) (bool, float64, map[string]any) {
	diag := map[string]any{DiagThreshold: required}
	if snap == nil || snap.Previous == nil {
		diag[DiagInsufficient] = true
		return false, 0, diag
	}
	curr, okCurr := averageGrade(snap)
	prev, okPrev := averageGrade(snap.Previous)
	if !okCurr || !okPrev {
		diag[DiagInsufficient] = true
		return false, 0, diag
	}
	improvement := curr - prev
	diag[DiagActual] = improvement
	diag["currentAverage"] = curr
	diag["previousAverage"] = prev
	return improvement >= required, ratioProgress(improvement, required), diag
}

func evalConsecutiveWeeks(snap *snapshot.Weekly, required int) (bool, float64, map[string]any) {
	diag := map[string]any{DiagThreshold: required}
	if required > 1 && (snap == nil || snap.Previous == nil) {
		diag[DiagInsufficient] = true
		return false, 0, diag
	}
	weeks := activeWeeks(snap)
	diag[DiagActual] = weeks
	return weeks >= required, ratioProgress(float64(weeks), float64(required)), diag
}

func evalCompletedCount(snap *snapshot.Weekly, required int) (bool, float64, map[string]any) {
	n := completedCount(snap)
	diag := map[string]any{DiagThreshold: required, DiagActual: n}
	return n >= required, ratioProgress(float64(n), float64(required)), diag
}

func evalPointsEarned(snap *snapshot.Weekly, required float64) (bool, float64, map[string]any) {
	pts := pointsEarned(snap)
	diag := map[string]any{DiagThreshold: required, DiagActual: pts, "unit": "points"}
	return pts >= required, ratioProgress(pts, required), diag
}
