package command

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/property"
)

// TypeSetProperty is the registry name of SetPropertyCommand.
const TypeSetProperty = "SetPropertyCommand"

// SetPropertyCommand sets one property on every selected object.
// Selected GUIDs that do not resolve are skipped.
type SetPropertyCommand struct {
	Base
	property *property.Property

	// previous maps each touched GUID to its prior property; nil means
	// the property was absent.
	previous map[string]*property.Serialized
	order    []string
}

type setPropertyPayload struct {
	BasePayload
	Property property.Serialized             `json:"property"`
	Previous map[string]*property.Serialized `json:"previous,omitempty"`
	Order    []string                        `json:"order,omitempty"`
}

// NewSetPropertyCommand creates a command setting p on the selected objects.
func NewSetPropertyCommand(selection []string, p *property.Property) *SetPropertyCommand {
	return &SetPropertyCommand{
		Base:     NewBase(selection),
		property: p.Clone(),
	}
}

// Property returns the property being set.
func (c *SetPropertyCommand) Property() *property.Property {
	return c.property
}

// Name returns TypeSetProperty.
func (c *SetPropertyCommand) Name() string {
	return TypeSetProperty
}

// Description returns a label naming the property.
func (c *SetPropertyCommand) Description() string {
	return fmt.Sprintf("Set %s", c.property.DisplayName())
}

// Do records the current value of the property on each selected object and
// replaces it.
func (c *SetPropertyCommand) Do(doc document.Document) error {
	c.previous = make(map[string]*property.Serialized)
	c.order = nil

	for _, guid := range c.selection {
		node, ok := Resolve(doc, guid)
		if !ok {
			continue
		}
		if _, seen := c.previous[guid]; seen {
			continue
		}

		var prev *property.Serialized
		if p, ok := node.GetProperty(c.property.Name()); ok {
			s := p.Serialize()
			prev = &s
		}
		if err := node.UpdateProperty(c.property); err != nil {
			_ = c.Undo(doc)
			return editerrors.NewOperationError("set property", guid, err)
		}
		c.previous[guid] = prev
		c.order = append(c.order, guid)
	}
	return nil
}

// Undo restores the recorded values in reverse order, removing the property
// where it did not exist before.
func (c *SetPropertyCommand) Undo(doc document.Document) error {
	for i := len(c.order) - 1; i >= 0; i-- {
		guid := c.order[i]
		node, ok := Resolve(doc, guid)
		if !ok {
			return editerrors.NewLookupError("object", guid)
		}

		var err error
		if prev := c.previous[guid]; prev == nil {
			err = node.RemoveProperty(c.property.Name())
		} else {
			err = node.UpdateProperty(property.Deserialize(*prev))
		}
		if err != nil {
			return editerrors.NewOperationError("undo set property", guid, err)
		}
	}
	return nil
}

// Serialize returns the payload, including the recorded prior values.
func (c *SetPropertyCommand) Serialize() any {
	return setPropertyPayload{
		BasePayload: c.Payload(),
		Property:    c.property.Serialize(),
		Previous:    c.previous,
		Order:       c.order,
	}
}

func decodeSetProperty(raw json.RawMessage) (*SetPropertyCommand, error) {
	var p setPropertyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	if p.Property.Name == "" {
		return nil, fmt.Errorf("missing property: %w", editerrors.ErrInvalidState)
	}
	return &SetPropertyCommand{
		Base:     base,
		property: property.Deserialize(p.Property),
		previous: p.Previous,
		order:    p.Order,
	}, nil
}
