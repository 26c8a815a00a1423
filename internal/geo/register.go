package geo

import (
	"encoding/json"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/object"
)

// RegisterObjects installs the map feature types.
func RegisterObjects(r *object.Registry) error {
	ctors := []struct {
		typ  string
		ctor object.Constructor
	}{
		{TypeFolder, folderFromSerialized},
		{TypePoint, pointFromSerialized},
		{TypeLineString, lineStringFromSerialized},
		{TypePolygon, polygonFromSerialized},
		{TypeCircle, circleFromSerialized},
		{TypeRectangle, rectangleFromSerialized},
	}
	for _, c := range ctors {
		if err := r.Register(c.typ, c.ctor); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCommands installs the map editing commands.
func RegisterCommands(r *command.Registry, objects *object.Registry) error {
	if err := r.Register(TypeMoveObject, func(payload json.RawMessage) (command.Command, error) {
		return decodeMoveObject(payload)
	}); err != nil {
		return err
	}
	if err := r.Register(TypeCreateFeature, func(payload json.RawMessage) (command.Command, error) {
		return decodeCreateFeature(payload, objects)
	}); err != nil {
		return err
	}
	return r.Register(TypeUpdateFeature, func(payload json.RawMessage) (command.Command, error) {
		return decodeUpdateFeature(payload, objects)
	})
}
