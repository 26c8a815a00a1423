package geo

import (
	"fmt"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// Object type names.
const (
	TypeFolder     = "Folder"
	TypePoint      = "Point"
	TypeLineString = "LineString"
	TypePolygon    = "Polygon"
	TypeCircle     = "Circle"
	TypeRectangle  = "Rectangle"
)

// Geometry property names.
const (
	PropLatitude    = "Latitude"
	PropLongitude   = "Longitude"
	PropCoordinates = "coordinates"

	PropCircleLat    = "__geo_editor_circle_lat"
	PropCircleLng    = "__geo_editor_circle_lng"
	PropCircleRadius = "__geo_editor_circle_radius"

	PropRectNWLat = "__geo_editor_rectangle_nw_lat"
	PropRectNWLng = "__geo_editor_rectangle_nw_lng"
	PropRectSELat = "__geo_editor_rectangle_se_lat"
	PropRectSELng = "__geo_editor_rectangle_se_lng"
)

// LonLat is a position in GeoJSON order.
type LonLat [2]float64

// Lon returns the longitude.
func (p LonLat) Lon() float64 { return p[0] }

// Lat returns the latitude.
func (p LonLat) Lat() float64 { return p[1] }

// Movable is implemented by objects that can be translated.
type Movable interface {
	Move(dLat, dLon float64) error
}

var coordinateMetadata = property.Metadata{
	Type:     property.TypeNumber,
	Readonly: true,
	Group:    "Geometry",
}

func readonlyNumber(name string, v float64) *property.Property {
	md := coordinateMetadata
	md.DisplayName = name
	return property.New(name, v, md)
}

// number reads a numeric property.
func number(o *object.Object, name string) (float64, error) {
	p, ok := o.GetProperty(name)
	if !ok {
		return 0, editerrors.NewLookupError("property", name)
	}
	f, ok := p.Float()
	if !ok {
		return 0, fmt.Errorf("property %s is not a number: %w", name, editerrors.ErrInvalidState)
	}
	return f, nil
}

// requireNumbers checks that a restored object carries its geometry.
func requireNumbers(o *object.Object, names ...string) error {
	for _, name := range names {
		if _, err := number(o, name); err != nil {
			return editerrors.NewOperationError("restore "+o.Type(), o.GUID(), err)
		}
	}
	return nil
}

// offset is a delta added to one numeric property.
type offset struct {
	name  string
	delta float64
}

// shift applies every offset. All properties are checked before any is
// updated, so a failure leaves o unchanged.
func shift(o *object.Object, offsets ...offset) error {
	updated := make([]*property.Property, 0, len(offsets))
	for _, off := range offsets {
		p, ok := o.GetProperty(off.name)
		if !ok {
			return editerrors.NewLookupError("property", off.name)
		}
		f, ok := p.Float()
		if !ok {
			return fmt.Errorf("property %s is not a number: %w", off.name, editerrors.ErrInvalidState)
		}
		updated = append(updated, p.WithValue(f+off.delta))
	}
	for _, p := range updated {
		if err := o.UpdateProperty(p); err != nil {
			return err
		}
	}
	return nil
}

func flatten(points []LonLat) []float64 {
	out := make([]float64, 0, len(points)*2)
	for _, p := range points {
		out = append(out, p[0], p[1])
	}
	return out
}

func unflatten(values []float64) []LonLat {
	out := make([]LonLat, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, LonLat{values[i], values[i+1]})
	}
	return out
}

// withoutGeometry drops caller-supplied properties that would collide with
// the geometry properties set by a constructor.
func withoutGeometry(props []*property.Property, names ...string) []*property.Property {
	out := make([]*property.Property, 0, len(props))
outer:
	for _, p := range props {
		for _, n := range names {
			if p.Name() == n {
				continue outer
			}
		}
		out = append(out, p)
	}
	return out
}
