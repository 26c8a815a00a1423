package geo

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// TypeUpdateFeature is the command type of UpdateFeatureCommand.
const TypeUpdateFeature = "UpdateFeatureCommand"

// geometryNames lists the properties holding the geometry of each type.
var geometryNames = map[string][]string{
	TypePoint:      {PropLatitude, PropLongitude},
	TypeLineString: {PropCoordinates},
	TypePolygon:    {PropCoordinates},
	TypeCircle:     {PropCircleLat, PropCircleLng, PropCircleRadius},
	TypeRectangle:  {PropRectNWLat, PropRectNWLng, PropRectSELat, PropRectSELng},
}

// UpdateFeatureCommand replaces the geometry of an existing object with the
// geometry of a GeoJSON Feature, as produced by vertex editing. The target
// is named by the feature's __meta_guid property. Do saves the object so
// Undo can restore the old geometry, also after a reload from the payload.
type UpdateFeatureCommand struct {
	command.Base
	objects *object.Registry
	guid    string
	feature json.RawMessage
	saved   *object.Saved
}

type updatePayload struct {
	command.BasePayload
	Feature json.RawMessage `json:"feature"`
	Saved   *object.Saved   `json:"savedObject,omitempty"`
}

// NewUpdateFeatureCommand creates a command applying feature, a GeoJSON
// Feature whose properties carry the target GUID.
func NewUpdateFeatureCommand(feature []byte, objects *object.Registry) (*UpdateFeatureCommand, error) {
	guid, err := featureGUID(feature)
	if err != nil {
		return nil, err
	}
	return &UpdateFeatureCommand{
		Base:    command.NewBase(nil),
		objects: objects,
		guid:    guid,
		feature: append(json.RawMessage(nil), feature...),
	}, nil
}

func featureGUID(feature []byte) (string, error) {
	if !gjson.ValidBytes(feature) || gjson.GetBytes(feature, "type").String() != "Feature" {
		return "", editerrors.NewOperationError("update feature", "",
			fmt.Errorf("not a geojson feature: %w", editerrors.ErrInvalidState))
	}
	guid := gjson.GetBytes(feature, "properties."+escapeKey(property.NameGUID)).String()
	if guid == "" {
		return "", editerrors.NewOperationError("update feature", "",
			fmt.Errorf("feature without %s: %w", property.NameGUID, editerrors.ErrInvalidState))
	}
	return guid, nil
}

// Name returns TypeUpdateFeature.
func (c *UpdateFeatureCommand) Name() string {
	return TypeUpdateFeature
}

// Description names the geometry type of the feature.
func (c *UpdateFeatureCommand) Description() string {
	return "Update " + gjson.GetBytes(c.feature, "geometry.type").String()
}

// TargetGUID returns the GUID of the updated object.
func (c *UpdateFeatureCommand) TargetGUID() string {
	return c.guid
}

// Do saves the target and writes the new geometry properties. The feature
// geometry must describe the target's own type.
func (c *UpdateFeatureCommand) Do(doc document.Document) error {
	node, ok := command.Resolve(doc, c.guid)
	if !ok {
		return editerrors.NewLookupError("object", c.guid)
	}

	f := gjson.ParseBytes(c.feature)
	typ, geometry, err := geometryProperties(f.Get("geometry"), f.Get("properties"))
	if err != nil {
		return editerrors.NewOperationError("update feature", c.guid, err)
	}
	names, ok := geometryNames[typ]
	if !ok || typ != node.Type() || len(geometry) != len(names) {
		return editerrors.NewOperationError("update feature", c.guid,
			fmt.Errorf("cannot update %s from %s geometry: %w", node.Type(), typ, editerrors.ErrInvalidState))
	}

	saved := c.objects.Save(node)
	for _, p := range geometry {
		if err := node.UpdateProperty(p); err != nil {
			_ = c.restore(node, saved)
			return editerrors.NewOperationError("update feature", c.guid, err)
		}
	}
	c.saved = &saved
	return nil
}

// Undo puts the saved geometry back.
func (c *UpdateFeatureCommand) Undo(doc document.Document) error {
	if c.saved == nil {
		return editerrors.NewOperationError("undo update feature", c.guid,
			fmt.Errorf("no saved object: %w", editerrors.ErrInvalidState))
	}
	node, ok := command.Resolve(doc, c.guid)
	if !ok {
		return editerrors.NewLookupError("object", c.guid)
	}
	if err := c.restore(node, *c.saved); err != nil {
		return editerrors.NewOperationError("undo update feature", c.guid, err)
	}
	return nil
}

// restore rebuilds saved and copies its geometry properties onto node.
func (c *UpdateFeatureCommand) restore(node object.Node, saved object.Saved) error {
	old, err := c.objects.Load(saved)
	if err != nil {
		return err
	}
	for _, name := range geometryNames[old.Type()] {
		p, ok := old.GetProperty(name)
		if !ok {
			continue
		}
		if err := node.UpdateProperty(p); err != nil {
			return err
		}
	}
	return nil
}

// Serialize returns the payload with the feature and the saved object.
func (c *UpdateFeatureCommand) Serialize() any {
	return updatePayload{
		BasePayload: c.Payload(),
		Feature:     c.feature,
		Saved:       c.saved,
	}
}

func decodeUpdateFeature(raw json.RawMessage, objects *object.Registry) (*UpdateFeatureCommand, error) {
	var p updatePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := command.BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	guid, err := featureGUID(p.Feature)
	if err != nil {
		return nil, err
	}
	return &UpdateFeatureCommand{Base: base, objects: objects, guid: guid, feature: p.Feature, saved: p.Saved}, nil
}
