package editor

import (
	"github.com/rs/zerolog"

	"github.com/dshills/mapforge/internal/history"
	"github.com/dshills/mapforge/internal/metrics"
)

// Option configures an Editor.
type Option func(*Editor)

// WithGUID sets the editor GUID instead of generating one.
func WithGUID(guid string) Option {
	return func(e *Editor) {
		if guid != "" {
			e.guid = guid
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) {
		e.log = log
	}
}

// WithMetrics records command activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

// WithMaxEntries bounds the undo buffer.
func WithMaxEntries(n int) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithMaxEntries(n))
	}
}
