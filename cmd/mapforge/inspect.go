package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/mapforge/internal/document"
	"github.com/dshills/mapforge/internal/geo"
	"github.com/dshills/mapforge/internal/object"
)

// nameWidth is the number of grapheme clusters shown per object name.
const nameWidth = 32

func (a *app) inspect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	showProps := fs.Bool("props", false, "List the properties of each object")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect takes one document", errUsage)
	}

	doc, err := a.loadDocument(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printTree(a.stdout, doc, 0, *showProps)
	if b, ok := geo.BoundsOf(doc); ok {
		fmt.Fprintf(a.stdout, "\nbounds: sw %.6f,%.6f ne %.6f,%.6f\n", b.SW.Lat(), b.SW.Lon(), b.NE.Lat(), b.NE.Lon())
		fmt.Fprintf(a.stdout, "paths: %.1f m\n", geo.TotalLength(doc))
	}
	return nil
}

// loadDocument reads the snapshot at path.
func (a *app) loadDocument(ctx context.Context, path string) (*document.Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.openDocument(ctx, data, a.formatFor(path), documentName(path))
}

func (a *app) openDocument(ctx context.Context, data []byte, format, name string) (*document.Base, error) {
	doc := document.New(a.catalog.Objects, name, document.WithFormat(format))
	if err := doc.Open(ctx, bytes.NewReader(data), format, ""); err != nil {
		return nil, err
	}
	return doc, nil
}

func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printTree(w io.Writer, n object.Node, depth int, showProps bool) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %q %s\n", indent, n.Type(), truncate(n.Name(), nameWidth), n.GUID())
	if showProps {
		for _, p := range n.Properties() {
			fmt.Fprintf(w, "%s  - %s = %v\n", indent, p.DisplayName(), p.Value())
		}
	}
	for _, c := range n.Children() {
		printTree(w, c, depth+1, showProps)
	}
}

// truncate shortens s to max grapheme clusters, marking the cut with an
// ellipsis.
func truncate(s string, max int) string {
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}
