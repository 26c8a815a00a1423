package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func noEnv() []string { return nil }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapforge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("MaxEntries = %d, want default", cfg.History.MaxEntries)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
format = "json"

[history]
max_entries = 50

[document]
format = "cbor"
`)
	env := func() []string {
		return []string{"MAPFORGE_HISTORY_MAX_ENTRIES=7", "MAPFORGE_METRICS_ENABLED=yes"}
	}

	cfg, err := Load(path, WithEnviron(env))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.History.MaxEntries != 7 {
		t.Errorf("MaxEntries = %d, want env override 7", cfg.History.MaxEntries)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "mapforge" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Document.Format != "cbor" {
		t.Errorf("Document.Format = %q", cfg.Document.Format)
	}
}

func TestLoadWithoutEnv(t *testing.T) {
	t.Setenv("MAPFORGE_LOG_LEVEL", "error")
	cfg, err := Load("", WithoutEnv())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadProcessEnv(t *testing.T) {
	t.Setenv("MAPFORGE_LOG_LEVEL", "error")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %q, want error", cfg.Logging.Level)
	}
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[logging\nlevel = 1"},
		{"type mismatch", "[history]\nmax_entries = \"many\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), WithEnviron(noEnv))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		path   string
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"history", func(c *Config) { c.History.MaxEntries = -1 }, "history.max_entries"},
		{"codec", func(c *Config) { c.Document.Format = "yaml" }, "document.format"},
		{"namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, "metrics.namespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("error does not wrap ErrValidationFailed")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
