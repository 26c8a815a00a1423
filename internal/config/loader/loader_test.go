package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return fileInfo{name: path}, nil
}

type fileInfo struct{ name string }

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func TestTOMLLoaderLoad(t *testing.T) {
	fsys := memFS{"/etc/mapforge.toml": "[history]\nmax_entries = 50\n\n[logging]\nlevel = \"debug\"\n"}
	cfg, err := NewTOMLLoaderWithFS(fsys, "/etc/mapforge.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	history, ok := cfg["history"].(map[string]any)
	if !ok {
		t.Fatalf("history section missing: %v", cfg)
	}
	if history["max_entries"] != int64(50) {
		t.Errorf("max_entries = %v (%T)", history["max_entries"], history["max_entries"])
	}
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(memFS{}, "/nope.toml").Load()
	if err != nil || cfg != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", cfg, err)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	fsys := memFS{"/bad.toml": "[history\nmax_entries = 1\n"}
	_, err := NewTOMLLoaderWithFS(fsys, "/bad.toml").Load()

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" || perr.Line == 0 {
		t.Errorf("ParseError = %+v", perr)
	}
	if !strings.Contains(perr.Error(), "/bad.toml") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestLoadReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapforge.toml")
	if err := os.WriteFile(path, []byte("[document]\nformat = \"cbor\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewTOMLLoaderWithFS(DefaultFS(), path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg["document"].(map[string]any)["format"] != "cbor" {
		t.Errorf("unexpected config %v", cfg)
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("MAPFORGE_")
	l.environ = func() []string {
		return []string{
			"MAPFORGE_LOG_LEVEL=warn",
			"MAPFORGE_HISTORY_MAX_ENTRIES=25",
			"MAPFORGE_METRICS_ENABLED=true",
			"MAPFORGE_METRICS_NAMESPACE=edit",
			"MAPFORGE_BOGUS=1",
			"HOME=/root",
		}
	}
	l.AddMapping("MAPFORGE_NS", "metrics.namespace")

	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		section, key string
		want         any
	}{
		{"logging", "level", "warn"},
		{"history", "max_entries", int64(25)},
		{"metrics", "enabled", true},
		{"metrics", "namespace", "edit"},
	}
	for _, tt := range tests {
		sec, ok := cfg[tt.section].(map[string]any)
		if !ok {
			t.Errorf("section %s missing", tt.section)
			continue
		}
		if sec[tt.key] != tt.want {
			t.Errorf("%s.%s = %v, want %v", tt.section, tt.key, sec[tt.key], tt.want)
		}
	}
	if _, ok := cfg["bogus"]; ok {
		t.Error("variable without a key should be ignored")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"json", "json"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info", "format": "json"},
		"history": map[string]any{"max_entries": int64(10)},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"history": "replaced",
	}
	got := DeepMerge(dst, src)

	logging := got["logging"].(map[string]any)
	if logging["level"] != "debug" || logging["format"] != "json" {
		t.Errorf("logging = %v", logging)
	}
	if got["history"] != "replaced" {
		t.Errorf("history = %v", got["history"])
	}
	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) returned nil")
	}
}
