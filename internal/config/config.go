package config

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mapforge/internal/codec"
	"github.com/dshills/mapforge/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "MAPFORGE_"

// Config holds all settings.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	History  HistoryConfig  `toml:"history"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Document DocumentConfig `toml:"document"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled.
	Level string `toml:"level"`
	// Format is "json" or "console".
	Format string `toml:"format"`
}

// HistoryConfig configures undo buffers.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// DocumentConfig configures document snapshots.
type DocumentConfig struct {
	// Format is the default snapshot codec.
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		History:  HistoryConfig{MaxEntries: 1000},
		Metrics:  MetricsConfig{Enabled: false, Namespace: "mapforge"},
		Document: DocumentConfig{Format: codec.FormatJSON},
	}
}

type options struct {
	fs      loader.FileSystem
	environ func() []string
	useEnv  bool
}

// Option configures Load.
type Option func(*options)

// WithFS reads the file through fs.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithEnviron reads overrides from environ instead of the process
// environment.
func WithEnviron(environ func() []string) Option {
	return func(o *options) { o.environ = environ }
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *options) { o.useEnv = false }
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path or a missing file only skips that layer.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
	if err != nil {
		return nil, err
	}
	if o.useEnv {
		env, err := loader.NewEnvLoaderWithEnviron(EnvPrefix, o.environ).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if len(merged) > 0 {
		if err := decode(path, merged, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies the merged layers on top of cfg.
func decode(source string, merged map[string]any, cfg *Config) error {
	data, err := toml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		if source == "" {
			source = "<environment>"
		}
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	validFormats = []string{"json", "console"}
)

// Validate checks every setting.
func (c *Config) Validate() error {
	if !contains(validLevels, c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "unknown level"}
	}
	if !contains(validFormats, c.Logging.Format) {
		return &ValidationError{Path: "logging.format", Value: c.Logging.Format, Message: "must be json or console"}
	}
	if c.History.MaxEntries < 0 {
		return &ValidationError{Path: "history.max_entries", Value: c.History.MaxEntries, Message: "must not be negative"}
	}
	if _, err := codec.ByName(c.Document.Format); err != nil {
		return &ValidationError{Path: "document.format", Value: c.Document.Format, Message: "unknown codec"}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return &ValidationError{Path: "metrics.namespace", Value: c.Metrics.Namespace, Message: "required when metrics are enabled"}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
