// Package main is the entry point for the mapforge command line tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dshills/mapforge/internal/catalog"
	"github.com/dshills/mapforge/internal/codec"
	"github.com/dshills/mapforge/internal/config"
	"github.com/dshills/mapforge/internal/logging"
	"github.com/dshills/mapforge/internal/metrics"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage")

// app carries what every subcommand needs.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	log     zerolog.Logger
	metrics *metrics.Metrics
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mapforge", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  string
		logLevel    string
		metricsOut  string
		showVersion bool
	)
	fs.StringVar(&configPath, "config", "", "Path to configuration file")
	fs.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	fs.StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this file on exit")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "mapforge %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if !isTerminal(stderr) {
		cfg.Logging.Format = "json"
	}

	logs, err := logging.New().FromConfig(cfg.Logging).FromWriter(stderr).Make()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logs.Close()

	cat, err := catalog.Default()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a := &app{
		cfg:     cfg,
		catalog: cat,
		log:     logging.WithComponent(logs.Logger, "cli"),
		stdout:  stdout,
		stderr:  stderr,
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled || metricsOut != "" {
		reg = prometheus.NewRegistry()
		namespace := cfg.Metrics.Namespace
		if namespace == "" {
			namespace = "mapforge"
		}
		if a.metrics, err = metrics.New(namespace, reg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	switch name {
	case "inspect":
		err = a.inspect(ctx, rest)
	case "replay":
		err = a.replay(ctx, rest)
	case "import":
		err = a.importGeoJSON(ctx, rest)
	case "export":
		err = a.exportGeoJSON(ctx, rest)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	if reg != nil && metricsOut != "" {
		if werr := writeMetrics(reg, metricsOut); werr != nil && err == nil {
			err = werr
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	case errors.Is(err, context.Canceled):
		return 0
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "mapforge - map document editing engine\n\n")
	fmt.Fprintf(w, "Usage: mapforge [options] <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  inspect <doc>                        Print the object tree\n")
	fmt.Fprintf(w, "  replay [-watch] [-out f] <doc> <log> Apply a JSON command log\n")
	fmt.Fprintf(w, "  import [-out f] <geojson>            Convert GeoJSON to a document\n")
	fmt.Fprintf(w, "  export [-out f] <doc>                Convert a document to GeoJSON\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nConsole log output is used only when stderr is a terminal.\n")
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatFor picks the snapshot codec from the file extension, falling back
// to the configured default.
func (a *app) formatFor(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, err := codec.ByName(ext); err == nil {
		return ext
	}
	return a.cfg.Document.Format
}

// writeOutput writes data to path, or to stdout when path is "" or "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeMetrics(reg *prometheus.Registry, path string) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
