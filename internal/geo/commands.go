package geo

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
)

// Command type names.
const (
	TypeMoveObject    = "MoveObjectCommand"
	TypeCreateFeature = "CreateFeatureCommand"
)

// MoveObjectCommand translates the selected objects by a fixed delta.
// Objects that cannot move are skipped.
type MoveObjectCommand struct {
	command.Base
	dLat  float64
	dLon  float64
	moved []string
}

type movePayload struct {
	command.BasePayload
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Moved []string `json:"moved,omitempty"`
}

// NewMoveObjectCommand creates a command moving the selection.
func NewMoveObjectCommand(selection []string, dLat, dLon float64) *MoveObjectCommand {
	return &MoveObjectCommand{Base: command.NewBase(selection), dLat: dLat, dLon: dLon}
}

// Name returns TypeMoveObject.
func (c *MoveObjectCommand) Name() string {
	return TypeMoveObject
}

// Description returns "Move".
func (c *MoveObjectCommand) Description() string {
	return "Move"
}

// Delta returns the translation.
func (c *MoveObjectCommand) Delta() (dLat, dLon float64) {
	return c.dLat, c.dLon
}

// Do moves every selected object that implements Movable.
func (c *MoveObjectCommand) Do(doc document.Document) error {
	c.moved = nil
	for _, guid := range c.SelectionSet() {
		node, ok := command.Resolve(doc, guid)
		if !ok {
			continue
		}
		m, ok := node.(Movable)
		if !ok {
			continue
		}
		if err := m.Move(c.dLat, c.dLon); err != nil {
			_ = c.Undo(doc)
			return editerrors.NewOperationError("move object", guid, err)
		}
		c.moved = append(c.moved, guid)
	}
	return nil
}

// Undo moves the objects back in reverse order.
func (c *MoveObjectCommand) Undo(doc document.Document) error {
	for i := len(c.moved) - 1; i >= 0; i-- {
		guid := c.moved[i]
		node, ok := command.Resolve(doc, guid)
		if !ok {
			return editerrors.NewLookupError("object", guid)
		}
		m, ok := node.(Movable)
		if !ok {
			return editerrors.NewOperationError("undo move object", guid,
				fmt.Errorf("%s is not movable: %w", node.Type(), editerrors.ErrInvalidState))
		}
		if err := m.Move(-c.dLat, -c.dLon); err != nil {
			return editerrors.NewOperationError("undo move object", guid, err)
		}
	}
	return nil
}

// Serialize returns the payload.
func (c *MoveObjectCommand) Serialize() any {
	return movePayload{
		BasePayload: c.Payload(),
		Lat:         c.dLat,
		Lon:         c.dLon,
		Moved:       c.moved,
	}
}

func decodeMoveObject(raw json.RawMessage) (*MoveObjectCommand, error) {
	var p movePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := command.BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	return &MoveObjectCommand{Base: base, dLat: p.Lat, dLon: p.Lon, moved: p.Moved}, nil
}

// CreateFeatureCommand attaches a new object under a parent. The object is
// rebuilt from its snapshot on every Do, so redo restores the same GUID.
type CreateFeatureCommand struct {
	command.Base
	objects *object.Registry
	parent  string
	feature object.Serialized
}

type createPayload struct {
	command.BasePayload
	Parent  string            `json:"parent,omitempty"`
	Feature object.Serialized `json:"feature"`
}

// NewCreateFeatureCommand creates a command adding feature under parent.
// An empty parent means the document root.
func NewCreateFeatureCommand(parent string, feature object.Node, objects *object.Registry) *CreateFeatureCommand {
	return &CreateFeatureCommand{
		Base:    command.NewBase(nil),
		objects: objects,
		parent:  parent,
		feature: feature.Serialize(),
	}
}

// Name returns TypeCreateFeature.
func (c *CreateFeatureCommand) Name() string {
	return TypeCreateFeature
}

// Description names the created type.
func (c *CreateFeatureCommand) Description() string {
	return "Create " + c.feature.Type()
}

// FeatureGUID returns the GUID of the created object.
func (c *CreateFeatureCommand) FeatureGUID() string {
	return c.feature.GUID
}

// Do builds the feature and attaches it.
func (c *CreateFeatureCommand) Do(doc document.Document) error {
	parent, err := c.resolveParent(doc)
	if err != nil {
		return err
	}
	if _, exists := command.Resolve(doc, c.feature.GUID); exists {
		return editerrors.NewConflictError("object", c.feature.GUID)
	}
	node, err := c.objects.Build(c.feature)
	if err != nil {
		return err
	}
	if err := parent.AddChild(node); err != nil {
		return editerrors.NewOperationError("create feature", c.feature.GUID, err)
	}
	return nil
}

// Undo detaches the feature.
func (c *CreateFeatureCommand) Undo(doc document.Document) error {
	parent, err := c.resolveParent(doc)
	if err != nil {
		return err
	}
	if _, err := parent.RemoveChild(c.feature.GUID); err != nil {
		return editerrors.NewOperationError("undo create feature", c.feature.GUID, err)
	}
	return nil
}

func (c *CreateFeatureCommand) resolveParent(doc document.Document) (object.Node, error) {
	if c.parent == "" {
		return doc, nil
	}
	parent, ok := command.Resolve(doc, c.parent)
	if !ok {
		return nil, editerrors.NewLookupError("object", c.parent)
	}
	return parent, nil
}

// Serialize returns the payload with the feature snapshot.
func (c *CreateFeatureCommand) Serialize() any {
	return createPayload{
		BasePayload: c.Payload(),
		Parent:      c.parent,
		Feature:     c.feature,
	}
}

func decodeCreateFeature(raw json.RawMessage, objects *object.Registry) (*CreateFeatureCommand, error) {
	var p createPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := command.BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	if p.Feature.GUID == "" {
		return nil, fmt.Errorf("missing feature guid: %w", editerrors.ErrInvalidState)
	}
	return &CreateFeatureCommand{Base: base, objects: objects, parent: p.Parent, feature: p.Feature}, nil
}
