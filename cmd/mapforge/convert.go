package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/mapforge/internal/document"
	"github.com/dshills/mapforge/internal/geo"
)

func (a *app) importGeoJSON(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "-", "Output document (format from extension)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: import takes one GeoJSON file", errUsage)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	nodes, err := geo.ImportGeoJSON(data, a.catalog.Objects)
	if err != nil {
		return err
	}

	format := a.formatFor(*out)
	doc := document.New(a.catalog.Objects, documentName(fs.Arg(0)), document.WithFormat(format))
	if err := doc.ReplaceChildren(nodes); err != nil {
		return err
	}
	snapshot, err := doc.Save(format)
	if err != nil {
		return err
	}
	a.log.Info().Str("source", fs.Arg(0)).Int("features", len(nodes)).Str("format", format).Msg("imported")
	return a.writeOutput(*out, snapshot)
}

func (a *app) exportGeoJSON(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "-", "Output GeoJSON file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: export takes one document", errUsage)
	}

	doc, err := a.loadDocument(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	data, err := geo.ExportGeoJSON(doc)
	if err != nil {
		return err
	}
	return a.writeOutput(*out, data)
}
