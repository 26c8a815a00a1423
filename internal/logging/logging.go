// Package logging builds the zerolog loggers used across mapforge.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/mapforge/internal/config"
)

const permission = 0o664

// ComponentKey is the field naming the subsystem that wrote an entry.
const ComponentKey = "component"

// Builder assembles a Log.
type Builder struct {
	writer io.Writer
	path   string
	level  string
	format string
}

// Log owns a logger and the file it writes to, if any.
type Log struct {
	Logger zerolog.Logger
	file   *os.File
}

// New returns a builder writing JSON at info level to stderr.
func New() *Builder {
	return &Builder{level: "info", format: "json"}
}

// FromConfig applies the [logging] settings.
func (b *Builder) FromConfig(cfg config.LoggingConfig) *Builder {
	if cfg.Level != "" {
		b.level = cfg.Level
	}
	if cfg.Format != "" {
		b.format = cfg.Format
	}
	return b
}

// FromPath appends entries to the file at path.
func (b *Builder) FromPath(path string) *Builder {
	b.path = path
	return b
}

// FromWriter writes entries to w.
func (b *Builder) FromWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// Make opens the output and builds the logger.
func (b *Builder) Make() (*Log, error) {
	level, err := zerolog.ParseLevel(b.level)
	if err != nil {
		return nil, fmt.Errorf("logging level %q: %w", b.level, err)
	}

	log := new(Log)
	var w io.Writer = os.Stderr
	if b.writer != nil {
		w = b.writer
	}
	if b.path != "" {
		log.file, err = os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		w = zerolog.SyncWriter(log.file)
	}

	switch b.format {
	case "json", "":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, NoColor: b.path != ""}
	default:
		log.Close()
		return nil, fmt.Errorf("logging format %q: unsupported", b.format)
	}

	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, nil
}

// Close closes the log file, if any.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(ComponentKey, name).Logger()
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
