package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCommand(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("mapforge", reg)
	require.NoError(t, err)

	m.ObserveCommand(OpApply, "SetPropertyCommand", time.Millisecond, nil)
	m.ObserveCommand(OpApply, "SetPropertyCommand", time.Millisecond, nil)
	m.ObserveCommand(OpUndo, "SetPropertyCommand", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues(OpApply, "SetPropertyCommand")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.commands.WithLabelValues(OpUndo, "SetPropertyCommand")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues(OpUndo, "SetPropertyCommand")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHistoryAndEditors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("mapforge", reg)
	require.NoError(t, err)

	m.EditorAdded()
	m.SetHistory("e1", 2, 5)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.historyDepth.WithLabelValues("e1")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.historyLen.WithLabelValues("e1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.editors))

	m.EditorRemoved("e1")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.editors))
	assert.Equal(t, 0, testutil.CollectAndCount(m.historyLen))
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New("mapforge", reg)
	require.NoError(t, err)
	second, err := New("mapforge", reg)
	require.NoError(t, err)

	first.EditorAdded()
	second.EditorAdded()
	assert.Equal(t, 2.0, testutil.ToFloat64(first.editors))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveCommand(OpRedo, "x", 0, nil)
	m.SetHistory("e", 0, 0)
	m.EditorAdded()
	m.EditorRemoved("e")
}
