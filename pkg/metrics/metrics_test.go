package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(opts ...Option) (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	opts = append([]Option{WithRegistry(reg)}, opts...)
	return NewManager(opts...), reg
}

func TestRecordEvaluation(t *testing.T) {
	m, _ := newTestManager()

	m.RecordEvaluation("specific", time.Millisecond)
	m.RecordEvaluation("specific", time.Millisecond)
	m.RecordEvaluation("classifier", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues("specific")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("classifier")))
}

func TestRecordCounters(t *testing.T) {
	m, _ := newTestManager()

	m.RecordUnrecognizedRule()
	m.RecordSelectionCreated()
	m.RecordLedgerReset()
	m.RecordUnlock(true)
	m.RecordUnlock(false)
	m.RecordSnapshotFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.unrecognizedRules))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.selectionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerResets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unlocksRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unlockConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotFailures))
}

func TestDisabledManagerRecordsNothing(t *testing.T) {
	m, _ := newTestManager(WithEnabled(false))

	m.RecordEvaluation("specific", time.Millisecond)
	m.RecordSelectionCreated()
	m.RecordUnlock(true)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.evaluations.WithLabelValues("specific")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.selectionsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.unlocksRecorded))
}

func TestMetricNames(t *testing.T) {
	m, reg := newTestManager(WithNamespace("ns"), WithSubsystem("sub"))
	m.RecordSelectionCreated()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "ns_sub_selections_created_total")
}

func TestDefaultManagerRegistered(t *testing.T) {
	assert.NotNil(t, Default())
	assert.NotNil(t, Registry())
	assert.Same(t, Default(), Default())
}
