// Package document provides the root of an editable object tree together
// with loading and saving it in the engine's native snapshot format.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dshills/mapforge/internal/codec"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// TypeDocument is the object type of document roots.
const TypeDocument = "Document"

// Document is the root object commands operate on.
type Document interface {
	object.Node

	// Format returns the format the document was last opened or saved in.
	Format() string

	// Open replaces the document contents with the snapshot read from r.
	Open(ctx context.Context, r io.Reader, format, name string) error

	// Save encodes the document in the given format ("" keeps Format()).
	Save(format string) ([]byte, error)
}

// LoadedEvent is emitted after Open swapped in new contents.
type LoadedEvent struct {
	Document Document
	Format   string
	Objects  int
}

// Base is the native Document implementation.
type Base struct {
	*object.Object

	registry *object.Registry
	format   string
	loaded   event.Channel[LoadedEvent]

	modified atomic.Bool
	version  atomic.Int64
}

// Option configures a Base.
type Option func(*Base)

// WithFormat sets the default snapshot format.
func WithFormat(format string) Option {
	return func(d *Base) {
		if format != "" {
			d.format = format
		}
	}
}

// WithGUID restores a document root with a known GUID.
func WithGUID(guid string) Option {
	return func(d *Base) {
		d.Object = object.NewWithGUID(guid, TypeDocument, d.Object.Name())
	}
}

// New creates an empty document. The registry rebuilds typed objects on Open.
func New(registry *object.Registry, name string, opts ...Option) *Base {
	d := &Base{
		Object:   object.New(TypeDocument, name),
		registry: registry,
		format:   codec.FormatJSON,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Object.Events().Modified.Subscribe(func(object.ChangedEvent) {
		d.modified.Store(true)
		d.version.Add(1)
	}, event.WithPriority[object.ChangedEvent](event.PriorityLow))
	return d
}

// Registry returns the object registry used to rebuild objects.
func (d *Base) Registry() *object.Registry {
	return d.registry
}

// Format returns the current snapshot format.
func (d *Base) Format() string {
	return d.format
}

// Loaded returns the channel notified after every successful Open.
func (d *Base) Loaded() *event.Channel[LoadedEvent] {
	return &d.loaded
}

// IsModified reports whether the tree changed since the last Open or Save.
func (d *Base) IsModified() bool {
	return d.modified.Load()
}

// Version returns the number of modifications since creation.
func (d *Base) Version() int64 {
	return d.version.Load()
}

// Save encodes the whole tree.
func (d *Base) Save(format string) ([]byte, error) {
	if format == "" {
		format = d.format
	}
	c, err := codec.ByName(format)
	if err != nil {
		return nil, err
	}

	data, err := c.Marshal(d.Serialize())
	if err != nil {
		return nil, editerrors.NewOperationError("save document", d.Name(), err)
	}
	d.format = format
	d.modified.Store(false)
	return data, nil
}

// Open reads a snapshot from r and replaces the document contents, including
// the root GUID and properties. The new subtree is fully built before it is
// swapped in, so a failed Open leaves the document untouched. A non-empty
// name overrides the persisted name.
func (d *Base) Open(ctx context.Context, r io.Reader, format, name string) error {
	if format == "" {
		format = d.format
	}
	c, err := codec.ByName(format)
	if err != nil {
		return err
	}

	raw, err := readAll(ctx, r)
	if err != nil {
		return editerrors.NewOperationError("open document", name, err)
	}

	var snapshot object.Serialized
	if err := c.Unmarshal(raw, &snapshot); err != nil {
		return editerrors.NewOperationError("open document", name,
			fmt.Errorf("decode %s: %w", format, err))
	}

	children := make([]object.Node, 0, len(snapshot.Children))
	count := 0
	for _, cd := range snapshot.Children {
		child, err := d.registry.Build(cd)
		if err != nil {
			return editerrors.NewOperationError("open document", name, err)
		}
		count += countNodes(child)
		children = append(children, child)
	}

	root := snapshot
	root.Children = nil
	if err := d.Restore(root); err != nil {
		return err
	}
	if err := d.ReplaceChildren(children); err != nil {
		return err
	}
	if name != "" {
		if err := d.UpdateProperty(property.New(property.NameName, name)); err != nil {
			return err
		}
	}

	d.format = format
	d.modified.Store(false)
	d.loaded.Emit(LoadedEvent{Document: d, Format: format, Objects: count})
	return nil
}

func countNodes(n object.Node) int {
	total := 1
	for _, c := range n.Children() {
		total += countNodes(c)
	}
	return total
}

// readAll reads r to EOF, giving up when ctx is done. A reader that is also
// an io.Closer is closed on cancellation to unblock the pending read;
// otherwise the read finishes in the background.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var buf bytes.Buffer
		_, err := buf.ReadFrom(r)
		done <- result{data: buf.Bytes(), err: err}
	}()

	select {
	case <-ctx.Done():
		if c, ok := r.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, ctx.Err()
	case res := <-done:
		return res.data, res.err
	}
}
