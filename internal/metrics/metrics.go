// Package metrics exposes editor activity as Prometheus collectors.
//
// A nil *Metrics is valid and records nothing, so callers can keep metrics
// optional without nil checks.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels.
const (
	OpApply = "apply"
	OpUndo  = "undo"
	OpRedo  = "redo"
)

// Metrics holds the editor collectors.
type Metrics struct {
	commands     *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	historyDepth *prometheus.GaugeVec
	historyLen   *prometheus.GaugeVec
	editors      prometheus.Gauge
}

// New creates the collectors under namespace and registers them with reg.
// Collectors already registered by an earlier call are reused.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "commands_total",
			Help:      "Commands applied, undone or redone.",
		}, []string{"op", "command"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "command_failures_total",
			Help:      "Commands whose Do or Undo returned an error.",
		}, []string{"op", "command"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "command_duration_seconds",
			Help:      "Time spent in Do and Undo.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		historyDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "applied_commands",
			Help:      "Commands before the undo caret.",
		}, []string{"editor"}),
		historyLen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "commands",
			Help:      "Commands held in the undo buffer.",
		}, []string{"editor"}),
		editors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "active",
			Help:      "Registered editors.",
		}),
	}

	var err error
	if m.commands, err = register(reg, m.commands); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.historyDepth, err = register(reg, m.historyDepth); err != nil {
		return nil, err
	}
	if m.historyLen, err = register(reg, m.historyLen); err != nil {
		return nil, err
	}
	if m.editors, err = register(reg, m.editors); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveCommand records one Do or Undo of a command.
func (m *Metrics) ObserveCommand(op, command string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		m.failures.WithLabelValues(op, command).Inc()
		return
	}
	m.commands.WithLabelValues(op, command).Inc()
}

// SetHistory records the undo buffer state of an editor.
func (m *Metrics) SetHistory(editor string, caret, length int) {
	if m == nil {
		return
	}
	m.historyDepth.WithLabelValues(editor).Set(float64(caret + 1))
	m.historyLen.WithLabelValues(editor).Set(float64(length))
}

// EditorAdded increments the active editor gauge.
func (m *Metrics) EditorAdded() {
	if m == nil {
		return
	}
	m.editors.Inc()
}

// EditorRemoved decrements the active editor gauge and drops the editor's
// history series.
func (m *Metrics) EditorRemoved(editor string) {
	if m == nil {
		return
	}
	m.editors.Dec()
	m.historyDepth.DeleteLabelValues(editor)
	m.historyLen.DeleteLabelValues(editor)
}
