// Package metrics provides Prometheus metrics for the weekly achievement
// engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages the engine's Prometheus metrics.
type Manager struct {
	namespace string
	subsystem string
	enabled   bool
	registry  prometheus.Registerer

	evaluations       *prometheus.CounterVec
	unrecognizedRules prometheus.Counter
	evaluationSeconds prometheus.Histogram

	selectionsCreated prometheus.Counter
	ledgerResets      prometheus.Counter

	unlocksRecorded  prometheus.Counter
	unlockConflicts  prometheus.Counter
	snapshotFailures prometheus.Counter
}

// Global metrics manager instance, registered on its own registry so the
// default Go collectors of an embedding process are not duplicated.
var (
	customRegistry = prometheus.NewRegistry()
	globalManager  = NewManager(WithRegistry(customRegistry))
)

// Default returns the global metrics manager.
func Default() *Manager {
	return globalManager
}

// Registry returns the registry backing the global manager, for embedders
// that expose an HTTP metrics endpoint.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "studypulse",
		subsystem: "achievements",
		enabled:   true,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total rule evaluations by dispatch source (specific, descriptor, classifier, unrecognized)",
	}, []string{"source"})

	m.unrecognizedRules = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unrecognized_rules_total",
		Help:      "Total evaluations whose calculation method matched no archetype (catalog/parser mismatch)",
	})

	m.evaluationSeconds = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent evaluating a single achievement against a snapshot",
		Buckets:   []float64{.00001, .0001, .001, .01, .1},
	})

	m.selectionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selections_created_total",
		Help:      "Total weekly selections created (idempotent re-reads excluded)",
	})

	m.ledgerResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_resets_total",
		Help:      "Total pool-exhaustion ledger resets",
	})

	m.unlocksRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unlocks_recorded_total",
		Help:      "Total newly persisted achievement unlocks",
	})

	m.unlockConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unlock_conflicts_total",
		Help:      "Total duplicate unlock attempts treated as no-op success",
	})

	m.snapshotFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_failures_total",
		Help:      "Total snapshot provider fetch failures",
	})
}

// RecordEvaluation counts one evaluation by dispatch source and observes its
// duration.
func (m *Manager) RecordEvaluation(source string, elapsed time.Duration) {
	if !m.enabled {
		return
	}
	m.evaluations.WithLabelValues(source).Inc()
	m.evaluationSeconds.Observe(elapsed.Seconds())
}

// RecordUnrecognizedRule counts a calculation method no archetype matched.
func (m *Manager) RecordUnrecognizedRule() {
	if !m.enabled {
		return
	}
	m.unrecognizedRules.Inc()
}

// RecordSelectionCreated counts a newly created weekly selection.
func (m *Manager) RecordSelectionCreated() {
	if !m.enabled {
		return
	}
	m.selectionsCreated.Inc()
}

// RecordLedgerReset counts a pool-exhaustion ledger reset.
func (m *Manager) RecordLedgerReset() {
	if !m.enabled {
		return
	}
	m.ledgerResets.Inc()
}

// RecordUnlock counts an unlock persistence attempt; created indicates a new
// record rather than an idempotent duplicate.
func (m *Manager) RecordUnlock(created bool) {
	if !m.enabled {
		return
	}
	if created {
		m.unlocksRecorded.Inc()
	} else {
		m.unlockConflicts.Inc()
	}
}

// RecordSnapshotFailure counts a provider fetch failure.
func (m *Manager) RecordSnapshotFailure() {
	if !m.enabled {
		return
	}
	m.snapshotFailures.Inc()
}
