package geo

import (
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// Rectangle is an axis-aligned box given by its north-west and south-east
// corners.
type Rectangle struct {
	*object.Object
}

// RectangleFromTwoPoints creates a rectangle with corners nw and se.
func RectangleFromTwoPoints(name string, nw, se LonLat, props ...*property.Property) *Rectangle {
	props = append(withoutGeometry(props, PropRectNWLat, PropRectNWLng, PropRectSELat, PropRectSELng),
		property.New(PropRectNWLng, nw.Lon()),
		property.New(PropRectNWLat, nw.Lat()),
		property.New(PropRectSELng, se.Lon()),
		property.New(PropRectSELat, se.Lat()),
	)
	return &Rectangle{Object: object.New(TypeRectangle, name, props...)}
}

// NewRectangle is RectangleFromTwoPoints.
func NewRectangle(name string, nw, se LonLat, props ...*property.Property) *Rectangle {
	return RectangleFromTwoPoints(name, nw, se, props...)
}

func rectangleFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := object.FromSerialized(data)
	if err != nil {
		return nil, err
	}
	if err := requireNumbers(o, PropRectNWLat, PropRectNWLng, PropRectSELat, PropRectSELng); err != nil {
		return nil, err
	}
	return &Rectangle{Object: o}, nil
}

// Corners returns the north-west and south-east corners.
func (r *Rectangle) Corners() (nw, se LonLat) {
	nwLat, _ := number(r.Object, PropRectNWLat)
	nwLng, _ := number(r.Object, PropRectNWLng)
	seLat, _ := number(r.Object, PropRectSELat)
	seLng, _ := number(r.Object, PropRectSELng)
	return LonLat{nwLng, nwLat}, LonLat{seLng, seLat}
}

// Ring returns the closed outline.
func (r *Rectangle) Ring() []LonLat {
	nw, se := r.Corners()
	return []LonLat{
		{nw.Lon(), nw.Lat()},
		{se.Lon(), nw.Lat()},
		{se.Lon(), se.Lat()},
		{nw.Lon(), se.Lat()},
		{nw.Lon(), nw.Lat()},
	}
}

// Move translates both corners.
func (r *Rectangle) Move(dLat, dLon float64) error {
	return shift(r.Object,
		offset{PropRectNWLat, dLat}, offset{PropRectSELat, dLat},
		offset{PropRectNWLng, dLon}, offset{PropRectSELng, dLon})
}
