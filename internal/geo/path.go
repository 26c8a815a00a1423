package geo

import (
	"fmt"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// LineString is an open path.
type LineString struct {
	*object.Object
}

// Polygon is a closed area given by its outer ring.
type Polygon struct {
	*object.Object
}

// NewLineString creates a path through points.
func NewLineString(name string, points []LonLat, props ...*property.Property) *LineString {
	return &LineString{Object: newPath(TypeLineString, name, points, props)}
}

// NewPolygon creates a polygon from its outer ring. The ring is closed if
// the last point differs from the first.
func NewPolygon(name string, ring []LonLat, props ...*property.Property) *Polygon {
	if n := len(ring); n > 0 && ring[0] != ring[n-1] {
		ring = append(append([]LonLat(nil), ring...), ring[0])
	}
	return &Polygon{Object: newPath(TypePolygon, name, ring, props)}
}

func newPath(typ, name string, points []LonLat, props []*property.Property) *object.Object {
	props = append(withoutGeometry(props, PropCoordinates),
		property.New(PropCoordinates, flatten(points)))
	return object.New(typ, name, props...)
}

func lineStringFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := pathFromSerialized(data)
	if err != nil {
		return nil, err
	}
	return &LineString{Object: o}, nil
}

func polygonFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := pathFromSerialized(data)
	if err != nil {
		return nil, err
	}
	return &Polygon{Object: o}, nil
}

func pathFromSerialized(data object.Serialized) (*object.Object, error) {
	o, err := object.FromSerialized(data)
	if err != nil {
		return nil, err
	}
	if _, err := coordinates(o); err != nil {
		return nil, editerrors.NewOperationError("restore "+o.Type(), o.GUID(), err)
	}
	return o, nil
}

func coordinates(o *object.Object) ([]LonLat, error) {
	p, ok := o.GetProperty(PropCoordinates)
	if !ok {
		return nil, editerrors.NewLookupError("property", PropCoordinates)
	}
	values, ok := p.Floats()
	if !ok || len(values)%2 != 0 {
		return nil, fmt.Errorf("coordinates must hold lon,lat pairs: %w", editerrors.ErrInvalidState)
	}
	return unflatten(values), nil
}

func movePath(o *object.Object, dLat, dLon float64) error {
	points, err := coordinates(o)
	if err != nil {
		return err
	}
	for i := range points {
		points[i] = LonLat{points[i][0] + dLon, points[i][1] + dLat}
	}
	p, _ := o.GetProperty(PropCoordinates)
	return o.UpdateProperty(p.WithValue(flatten(points)))
}

// Points returns the path vertices.
func (l *LineString) Points() []LonLat {
	points, _ := coordinates(l.Object)
	return points
}

// Move translates every vertex.
func (l *LineString) Move(dLat, dLon float64) error {
	return movePath(l.Object, dLat, dLon)
}

// Ring returns the outer ring.
func (p *Polygon) Ring() []LonLat {
	points, _ := coordinates(p.Object)
	return points
}

// Move translates every vertex.
func (p *Polygon) Move(dLat, dLon float64) error {
	return movePath(p.Object, dLat, dLon)
}
