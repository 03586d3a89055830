package catalog

import (
	"fmt"

	"github.com/samber/lo"
)

// Tier represents the difficulty tier of an achievement. Exactly one
// achievement per tier is selected for a user each week.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists all tiers in selection order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// Category represents the category of an achievement
type Category string

const (
	CategoryPerformance Category = "performance"
	CategoryTiming      Category = "timing"
	CategoryEngagement  Category = "engagement"
	CategoryVariety     Category = "variety"
	CategoryImprovement Category = "improvement"
	CategoryStreak      Category = "streak"
	CategoryThreshold   Category = "threshold"
)

// Categories lists all known categories.
var Categories = []Category{
	CategoryPerformance,
	CategoryTiming,
	CategoryEngagement,
	CategoryVariety,
	CategoryImprovement,
	CategoryStreak,
	CategoryThreshold,
}

// RuleKind identifies a structured rule archetype.
type RuleKind string

const (
	RuleGradeThreshold    RuleKind = "grade_threshold"
	RuleCompletionPercent RuleKind = "completion_percent"
	RuleSubmissionTiming  RuleKind = "submission_timing"
	RuleCourseCount       RuleKind = "course_count"
	RuleTypeVariety       RuleKind = "type_variety"
	RuleGradeImprovement  RuleKind = "grade_improvement"
	RuleConsecutiveWeeks  RuleKind = "consecutive_weeks"
	RuleCountThreshold    RuleKind = "count_threshold"
)

// Rule is a structured, machine-evaluable rule descriptor. A zero-value Rule
// means the definition carries no structured rule and evaluation falls back
// to classifying the free-text CalculationMethod.
type Rule struct {
	Kind RuleKind `yaml:"kind"`
	// Value is the numeric threshold the rule compares against. Its meaning
	// depends on Kind: a grade percentage, a completion percentage, hours
	// before the due time, a course/type count, a grade-point delta, a week
	// count, or an item/point count.
	Value float64 `yaml:"value"`
	// Unit disambiguates count_threshold rules: "activities" (default) counts
	// completed activities, "points" sums earned scores.
	Unit string `yaml:"unit,omitempty"`
}

// IsZero reports whether no structured rule was provided.
func (r Rule) IsZero() bool {
	return r.Kind == ""
}

// Definition defines a single achievement. Definitions are immutable,
// catalog-sourced data; Title is the unique key within a catalog.
type Definition struct {
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	Tier              Tier     `yaml:"tier"`
	Category          Category `yaml:"category"`
	Points            int      `yaml:"points"`
	Icon              string   `yaml:"icon"`
	CalculationMethod string   `yaml:"calculationMethod"`
	RequiredFields    []string `yaml:"requiredFields,omitempty"`
	Rule              Rule     `yaml:"rule,omitempty"`
}

// Catalog is a validated, read-only set of achievement definitions.
type Catalog struct {
	defs    []Definition
	byTitle map[string]Definition
	byTier  map[Tier][]Definition
}

// New validates the given definitions and builds a catalog. It fails with a
// configuration error when titles collide, a tier has no entries, or an
// entry is malformed; a broken catalog must never be silently accepted.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:    make([]Definition, len(defs)),
		byTitle: make(map[string]Definition, len(defs)),
		byTier:  make(map[Tier][]Definition, len(Tiers)),
	}
	copy(c.defs, defs)

	for _, def := range c.defs {
		if def.Title == "" {
			return nil, fmt.Errorf("%w: definition with empty title", ErrInvalidDefinition)
		}
		if def.Points <= 0 {
			return nil, fmt.Errorf("%w: %q has non-positive points", ErrInvalidDefinition, def.Title)
		}
		if !validTier(def.Tier) {
			return nil, fmt.Errorf("%w: %q has unknown tier %q", ErrInvalidDefinition, def.Title, def.Tier)
		}
		if !validCategory(def.Category) {
			return nil, fmt.Errorf("%w: %q has unknown category %q", ErrInvalidDefinition, def.Title, def.Category)
		}
		if _, dup := c.byTitle[def.Title]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, def.Title)
		}
		c.byTitle[def.Title] = def
		c.byTier[def.Tier] = append(c.byTier[def.Tier], def)
	}

	for _, tier := range Tiers {
		if len(c.byTier[tier]) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrTierEmpty, tier)
		}
	}

	return c, nil
}

// All returns every definition in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// ByTitle returns the definition with the given title, if present.
func (c *Catalog) ByTitle(title string) (Definition, bool) {
	def, ok := c.byTitle[title]
	return def, ok
}

// ByTier returns all definitions in a tier.
func (c *Catalog) ByTier(tier Tier) []Definition {
	defs := c.byTier[tier]
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// ByCategory returns all definitions in a category.
func (c *Catalog) ByCategory(category Category) []Definition {
	return lo.Filter(c.defs, func(def Definition, _ int) bool {
		return def.Category == category
	})
}

func validTier(t Tier) bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	}
	return false
}

func validCategory(cat Category) bool {
	for _, c := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
