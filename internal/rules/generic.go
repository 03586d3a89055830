package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/studypulse/studypulse/internal/catalog"
)

// Free-text rule classification. Calculation methods are human-readable
// strings; when a catalog entry carries neither a specific predicate nor a
// structured descriptor, the text is pattern-matched into one of the eight
// archetypes. Ordering matters: improvement mentions grades, timing mentions
// percentages, so the more specific shapes are tested first.

var (
	rePercent     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	reNumber      = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	reHours       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*hours?`)
	rePointsDelta = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*points?`)
	reWeeks       = regexp.MustCompile(`(\d+)\s*consecutive\s*weeks?`)
	reCourses     = regexp.MustCompile(`(\d+)\s*(?:different|distinct)\s*courses?`)
	reTypes       = regexp.MustCompile(`(\d+)\s*(?:different|distinct)\s*types?`)
)

// classify pattern-matches a calculation method into archetype parameters.
// ok is false when no archetype matches; the caller surfaces that as an
// unrecognized-rule diagnostic.
func classify(text string) (ruleParams, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ruleParams{}, false
	}

	// Consecutive weeks, e.g. "complete assignments in 2 consecutive weeks".
	if m := reWeeks.FindStringSubmatch(lower); m != nil {
		return ruleParams{kind: catalog.RuleConsecutiveWeeks, value: parseNum(m[1]), share: 1}, true
	}

	// Grade improvement, e.g. "improve your average grade by at least 10
	// points over last week".
	if strings.Contains(lower, "improve") {
		if m := rePointsDelta.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleGradeImprovement, value: parseNum(m[1]), share: 1}, true
		}
		if m := rePercent.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleGradeImprovement, value: parseNum(m[1]), share: 1}, true
		}
	}

	// Submission timing, e.g. "submit at least 80% of assignments 24 hours
	// before their due date" or "submit every assignment before its due date".
	if strings.Contains(lower, "before") && (strings.Contains(lower, "due") || strings.Contains(lower, "deadline")) {
		p := ruleParams{kind: catalog.RuleSubmissionTiming, share: 1}
		if m := reHours.FindStringSubmatch(lower); m != nil {
			p.value = parseNum(m[1])
		}
		if m := rePercent.FindStringSubmatch(lower); m != nil {
			p.share = parseNum(m[1]) / 100
		}
		return p, true
	}

	// Course count, e.g. "complete activities in at least 3 different courses".
	if m := reCourses.FindStringSubmatch(lower); m != nil {
		return ruleParams{kind: catalog.RuleCourseCount, value: parseNum(m[1]), share: 1}, true
	}

	// Type variety, e.g. "complete at least 2 different types of activities".
	if m := reTypes.FindStringSubmatch(lower); m != nil {
		return ruleParams{kind: catalog.RuleTypeVariety, value: parseNum(m[1]), share: 1}, true
	}

	// Completion percentage, e.g. "complete at least 90% of assignments".
	if strings.Contains(lower, "complet") {
		if m := rePercent.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleCompletionPercent, value: parseNum(m[1]), share: 1}, true
		}
	}

	// Grade threshold, e.g. "achieve an average grade of at least 90%".
	if strings.Contains(lower, "grade") || strings.Contains(lower, "average") || strings.Contains(lower, "score") {
		if m := rePercent.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleGradeThreshold, value: parseNum(m[1]), share: 1}, true
		}
	}

	// Point threshold, e.g. "earn at least 100 points from scored work".
	if strings.Contains(lower, "point") {
		if m := rePointsDelta.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleCountThreshold, value: parseNum(m[1]), unit: "points", share: 1}, true
		}
	}

	// Plain count threshold, e.g. "complete at least 5 assignments".
	if strings.Contains(lower, "complet") || strings.Contains(lower, "submit") || strings.Contains(lower, "finish") {
		if m := reNumber.FindStringSubmatch(lower); m != nil {
			return ruleParams{kind: catalog.RuleCountThreshold, value: parseNum(m[1]), share: 1}, true
		}
	}

	return ruleParams{}, false
}

func parseNum(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
