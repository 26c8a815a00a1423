package geo

import (
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// Point is a single position.
type Point struct {
	*object.Object
}

// NewPoint creates a point at lat, lon.
func NewPoint(name string, lat, lon float64, props ...*property.Property) *Point {
	props = append(withoutGeometry(props, PropLatitude, PropLongitude),
		readonlyNumber(PropLatitude, lat),
		readonlyNumber(PropLongitude, lon),
	)
	return &Point{Object: object.New(TypePoint, name, props...)}
}

func pointFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := object.FromSerialized(data)
	if err != nil {
		return nil, err
	}
	if err := requireNumbers(o, PropLatitude, PropLongitude); err != nil {
		return nil, err
	}
	return &Point{Object: o}, nil
}

// Position returns the point position.
func (p *Point) Position() LonLat {
	lat, _ := number(p.Object, PropLatitude)
	lon, _ := number(p.Object, PropLongitude)
	return LonLat{lon, lat}
}

// Move translates the point.
func (p *Point) Move(dLat, dLon float64) error {
	return shift(p.Object, offset{PropLatitude, dLat}, offset{PropLongitude, dLon})
}
