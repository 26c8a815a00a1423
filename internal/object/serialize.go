package object

import (
	"fmt"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/property"
)

// Serialized is the persisted form of an object subtree.
type Serialized struct {
	GUID       string                `json:"guid"`
	Properties []property.Serialized `json:"properties"`
	Children   []Serialized          `json:"children"`
}

// Saved pairs a serialized object with its type for storage outside a tree.
type Saved struct {
	Type    string     `json:"type"`
	Payload Serialized `json:"payload"`
}

// Type returns the value of the __meta_type property, or "".
func (s Serialized) Type() string {
	return s.stringProperty(property.NameType)
}

// Name returns the value of the name property, or "".
func (s Serialized) Name() string {
	return s.stringProperty(property.NameName)
}

func (s Serialized) stringProperty(name string) string {
	for _, p := range s.Properties {
		if p.Name == name {
			if v, ok := p.Value.(string); ok {
				return v
			}
		}
	}
	return ""
}

// Serialize returns the persisted form of o and its subtree.
func (o *Object) Serialize() Serialized {
	s := Serialized{
		GUID:       o.guid,
		Properties: make([]property.Serialized, 0, len(o.properties)),
		Children:   make([]Serialized, 0, len(o.children)),
	}
	for _, p := range o.properties {
		s.Properties = append(s.Properties, p.Serialize())
	}
	for _, c := range o.children {
		s.Children = append(s.Children, c.Serialize())
	}
	return s
}

// FromSerialized restores a plain object from data, without its children.
// Typed objects use it to rebuild their embedded *Object. Properties keep
// their persisted order; a missing name property stays missing.
func FromSerialized(data Serialized) (*Object, error) {
	guid := data.GUID
	if guid == "" {
		guid = data.stringProperty(property.NameGUID)
	}
	if guid == "" {
		return nil, editerrors.NewOperationError("deserialize object", data.Type(),
			fmt.Errorf("missing guid: %w", editerrors.ErrInvalidState))
	}

	typ := data.Type()
	if typ == "" {
		typ = TypeRoot
	}
	return &Object{
		guid:       guid,
		typ:        typ,
		properties: restoreProperties(guid, typ, data.Properties),
		edges:      make(map[*Object]event.Subscription),
	}, nil
}

// restoreProperties rebuilds a persisted property list. Duplicate names keep
// their first occurrence. Reserved properties are rewritten when their
// persisted value disagrees with guid or typ, and appended when absent.
func restoreProperties(guid, typ string, persisted []property.Serialized) []*property.Property {
	props := make([]*property.Property, 0, len(persisted)+2)
	seen := make(map[string]bool, len(persisted))
	for _, ps := range persisted {
		if seen[ps.Name] {
			continue
		}
		seen[ps.Name] = true
		switch {
		case ps.Name == property.NameGUID && ps.Value != guid:
			props = append(props, property.New(property.NameGUID, guid))
		case ps.Name == property.NameType && ps.Value != typ:
			props = append(props, property.New(property.NameType, typ))
		default:
			props = append(props, property.Deserialize(ps))
		}
	}
	if !seen[property.NameType] {
		props = append(props, property.New(property.NameType, typ))
	}
	if !seen[property.NameGUID] {
		props = append(props, property.New(property.NameGUID, guid))
	}
	return props
}
