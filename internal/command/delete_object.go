package command

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
)

// TypeDeleteObject is the registry name of DeleteObjectCommand.
const TypeDeleteObject = "DeleteObjectCommand"

// DeletedObject records a detached subtree and where it was attached.
type DeletedObject struct {
	Parent string            `json:"parent"`
	Object object.Serialized `json:"object"`
}

// DeleteObjectCommand detaches the selected objects from their parents.
// The document root and unresolved GUIDs are skipped.
type DeleteObjectCommand struct {
	Base
	objects *object.Registry
	deleted []DeletedObject

	// live holds the detached nodes so undo can re-attach the same
	// instances; commands rebuilt from a payload fall back to objects.
	live map[string]object.Node
}

type deleteObjectPayload struct {
	BasePayload
	Deleted []DeletedObject `json:"deleted,omitempty"`
}

// NewDeleteObjectCommand creates a command deleting the selected objects.
// objects rebuilds subtrees when no live node is available.
func NewDeleteObjectCommand(selection []string, objects *object.Registry) *DeleteObjectCommand {
	return &DeleteObjectCommand{
		Base:    NewBase(selection),
		objects: objects,
	}
}

// Name returns TypeDeleteObject.
func (c *DeleteObjectCommand) Name() string {
	return TypeDeleteObject
}

// Description returns a label with the object count.
func (c *DeleteObjectCommand) Description() string {
	if len(c.selection) == 1 {
		return "Delete object"
	}
	return fmt.Sprintf("Delete %d objects", len(c.selection))
}

// ClearSelection returns true; deleted objects cannot stay selected.
func (c *DeleteObjectCommand) ClearSelection() bool {
	return true
}

// Do detaches each selected object.
func (c *DeleteObjectCommand) Do(doc document.Document) error {
	c.deleted = nil
	c.live = make(map[string]object.Node)

	for _, guid := range c.selection {
		node, ok := doc.Find(guid)
		if !ok {
			continue
		}
		parent := node.Parent()
		snapshot := DeletedObject{Parent: parent.GUID(), Object: node.Serialize()}
		if _, err := parent.RemoveChild(guid); err != nil {
			_ = c.Undo(doc)
			return editerrors.NewOperationError("delete object", guid, err)
		}
		c.deleted = append(c.deleted, snapshot)
		c.live[guid] = node
	}
	return nil
}

// Undo re-attaches the deleted objects in reverse order.
func (c *DeleteObjectCommand) Undo(doc document.Document) error {
	for i := len(c.deleted) - 1; i >= 0; i-- {
		d := c.deleted[i]
		parent, ok := Resolve(doc, d.Parent)
		if !ok {
			return editerrors.NewLookupError("object", d.Parent)
		}

		node, ok := c.live[d.Object.GUID]
		if !ok {
			if c.objects == nil {
				return editerrors.NewOperationError("undo delete object", d.Object.GUID,
					fmt.Errorf("no object registry: %w", editerrors.ErrInvalidState))
			}
			var err error
			if node, err = c.objects.Build(d.Object); err != nil {
				return err
			}
		}
		if err := parent.AddChild(node); err != nil {
			return editerrors.NewOperationError("undo delete object", d.Object.GUID, err)
		}
	}
	return nil
}

// Serialize returns the payload with the deleted subtrees.
func (c *DeleteObjectCommand) Serialize() any {
	return deleteObjectPayload{
		BasePayload: c.Payload(),
		Deleted:     c.deleted,
	}
}

func decodeDeleteObject(raw json.RawMessage, objects *object.Registry) (*DeleteObjectCommand, error) {
	var p deleteObjectPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	return &DeleteObjectCommand{
		Base:    base,
		objects: objects,
		deleted: p.Deleted,
	}, nil
}
