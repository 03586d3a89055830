// Package rules evaluates achievement definitions against weekly activity
// snapshots. Dispatch is tiered: a table of hand-written predicates keyed by
// achievement title, then the structured rule descriptor carried by the
// catalog entry, then a classifier that pattern-matches the free-text
// calculation method into one of eight archetypes. Rules that fall through
// all three report an unrecognized-rule diagnostic rather than failing.
package rules

import (
	"time"

	"go.uber.org/zap"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/snapshot"
	"github.com/studypulse/studypulse/pkg/metrics"
)

// Diagnostic keys shared by all rule outcomes.
const (
	DiagSource       = "source"
	DiagThreshold    = "threshold"
	DiagActual       = "actual"
	DiagUnrecognized = "unrecognized"
	DiagRuleText     = "rule"
	DiagArchetype    = "archetype"
	DiagInsufficient = "insufficientHistory"
)

// Dispatch sources recorded in diagnostics and metrics.
const (
	SourceSpecific     = "specific"
	SourceDescriptor   = "descriptor"
	SourceClassifier   = "classifier"
	SourceUnrecognized = "unrecognized"
)

// Result is the outcome of evaluating one achievement against one snapshot.
// Invariants: Unlocked implies Progress == 100, and Progress is always within
// [0, 100] regardless of input edge cases.
type Result struct {
	Achievement catalog.Definition
	Unlocked    bool
	Progress    float64
	Diagnostics map[string]any
}

// Evaluator scores achievements against weekly snapshots. Evaluation is
// read-only and side-effect-free with respect to the catalog and snapshot;
// an Evaluator is safe for concurrent use.
type Evaluator struct {
	logger  *zap.Logger
	metrics *metrics.Manager
}

// NewEvaluator creates an evaluator. A nil logger disables logging.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		logger:  logger,
		metrics: metrics.Default(),
	}
}

// Evaluate scores a single achievement against the snapshot.
func (e *Evaluator) Evaluate(def catalog.Definition, snap *snapshot.Weekly) Result {
	start := time.Now()

	var (
		unlocked bool
		progress float64
		diag     map[string]any
		source   string
	)

	switch {
	case hasSpecificRule(def.Title):
		unlocked, progress, diag = evalSpecific(def.Title, snap)
		source = SourceSpecific

	case !def.Rule.IsZero():
		unlocked, progress, diag = evalParams(paramsFromRule(def.Rule), snap)
		source = SourceDescriptor

	default:
		if p, ok := classify(def.CalculationMethod); ok {
			unlocked, progress, diag = evalParams(p, snap)
			diag[DiagArchetype] = string(p.kind)
			source = SourceClassifier
		} else {
			diag = map[string]any{
				DiagUnrecognized: true,
				DiagRuleText:     def.CalculationMethod,
			}
			source = SourceUnrecognized
			e.logger.Warn("unrecognized achievement rule",
				zap.String("title", def.Title),
				zap.String("rule", def.CalculationMethod))
			e.metrics.RecordUnrecognizedRule()
		}
	}

	if diag == nil {
		diag = map[string]any{}
	}
	diag[DiagSource] = source

	progress = clampProgress(progress)
	if unlocked {
		progress = 100
	}

	e.metrics.RecordEvaluation(source, time.Since(start))

	return Result{
		Achievement: def,
		Unlocked:    unlocked,
		Progress:    progress,
		Diagnostics: diag,
	}
}

// EvaluateAll scores every definition in the catalog against the snapshot,
// in catalog order.
func (e *Evaluator) EvaluateAll(cat *catalog.Catalog, snap *snapshot.Weekly) []Result {
	defs := cat.All()
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		results = append(results, e.Evaluate(def, snap))
	}
	return results
}
