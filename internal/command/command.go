package command

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
)

// Version is the payload version written by this package.
const Version = 1

// Command is an undoable edit of a document.
type Command interface {
	// Do applies the command.
	Do(doc document.Document) error

	// Undo reverts the effects of the last Do.
	Undo(doc document.Document) error

	// ClearSelection reports whether the editor should clear the selection
	// after Do.
	ClearSelection() bool

	// Serialize returns the JSON-encodable payload.
	Serialize() any

	// Name returns the registry type name.
	Name() string

	// Description returns a human-readable label for history views.
	Description() string

	GUID() string
	SelectionSet() []string
	Version() int
}

// BasePayload holds the fields every serialized command carries.
type BasePayload struct {
	Version      int      `json:"version"`
	GUID         string   `json:"guid"`
	SelectionSet []string `json:"selectionSet"`
}

// Saved is the typed envelope of a serialized command.
type Saved struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Base implements the identity part of Command. Embed it in concrete
// commands.
type Base struct {
	guid      string
	selection []string
	version   int
}

// NewBase creates a Base with a fresh GUID and a copy of selection.
func NewBase(selection []string) Base {
	return Base{
		guid:      uuid.NewString(),
		selection: copyStrings(selection),
		version:   Version,
	}
}

// BaseFromPayload restores a Base.
func BaseFromPayload(p BasePayload) (Base, error) {
	if p.GUID == "" {
		return Base{}, fmt.Errorf("missing guid: %w", editerrors.ErrInvalidState)
	}
	if p.Version > Version {
		return Base{}, fmt.Errorf("unsupported version %d: %w", p.Version, editerrors.ErrInvalidState)
	}
	v := p.Version
	if v == 0 {
		v = Version
	}
	return Base{guid: p.GUID, selection: copyStrings(p.SelectionSet), version: v}, nil
}

// GUID returns the command identifier.
func (b Base) GUID() string {
	return b.guid
}

// SelectionSet returns a copy of the selection snapshot.
func (b Base) SelectionSet() []string {
	return copyStrings(b.selection)
}

// Version returns the payload version.
func (b Base) Version() int {
	return b.version
}

// ClearSelection returns false.
func (b Base) ClearSelection() bool {
	return false
}

// Payload returns the common serialized fields.
func (b Base) Payload() BasePayload {
	return BasePayload{
		Version:      b.version,
		GUID:         b.guid,
		SelectionSet: copyStrings(b.selection),
	}
}

// Marshal encodes cmd into its envelope.
func Marshal(cmd Command) (Saved, error) {
	payload, err := json.Marshal(cmd.Serialize())
	if err != nil {
		return Saved{}, editerrors.NewOperationError("serialize command", cmd.Name(), err)
	}
	return Saved{Type: cmd.Name(), Payload: payload}, nil
}

// Resolve returns the node with the given GUID, including the document root.
func Resolve(doc document.Document, guid string) (object.Node, bool) {
	if doc.GUID() == guid {
		return doc, true
	}
	return doc.Find(guid)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
