package geo

import (
	"math"

	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// EarthRadius is the mean earth radius in meters.
const EarthRadius = 6371008.8

// circleSteps is the vertex count of exported circle polygons.
const circleSteps = 64

// Circle is a center and a radius in meters.
type Circle struct {
	*object.Object
}

// NewCircle creates a circle.
func NewCircle(name string, center LonLat, radius float64, props ...*property.Property) *Circle {
	props = append(withoutGeometry(props, PropCircleLat, PropCircleLng, PropCircleRadius),
		property.New(PropCircleLat, center.Lat()),
		property.New(PropCircleLng, center.Lon()),
		property.New(PropCircleRadius, radius),
	)
	return &Circle{Object: object.New(TypeCircle, name, props...)}
}

// CircleFromTwoPoints creates a circle around center passing through other.
func CircleFromTwoPoints(name string, center, other LonLat, props ...*property.Property) *Circle {
	return NewCircle(name, center, Distance(center, other), props...)
}

func circleFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := object.FromSerialized(data)
	if err != nil {
		return nil, err
	}
	if err := requireNumbers(o, PropCircleLat, PropCircleLng, PropCircleRadius); err != nil {
		return nil, err
	}
	return &Circle{Object: o}, nil
}

// Center returns the circle center.
func (c *Circle) Center() LonLat {
	lat, _ := number(c.Object, PropCircleLat)
	lon, _ := number(c.Object, PropCircleLng)
	return LonLat{lon, lat}
}

// Radius returns the radius in meters.
func (c *Circle) Radius() float64 {
	r, _ := number(c.Object, PropCircleRadius)
	return r
}

// Move translates the center.
func (c *Circle) Move(dLat, dLon float64) error {
	return shift(c.Object, offset{PropCircleLat, dLat}, offset{PropCircleLng, dLon})
}

// Ring approximates the circle with a closed polygon ring.
func (c *Circle) Ring() []LonLat {
	center := c.Center()
	radius := c.Radius()
	ring := make([]LonLat, 0, circleSteps+1)
	for i := 0; i < circleSteps; i++ {
		bearing := -360.0 * float64(i) / circleSteps
		ring = append(ring, Destination(center, radius, bearing))
	}
	return append(ring, ring[0])
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b LonLat) float64 {
	lat1, lat2 := radians(a.Lat()), radians(b.Lat())
	dLat := lat2 - lat1
	dLon := radians(b.Lon() - a.Lon())
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Destination returns the point distance meters from origin along bearing
// degrees.
func Destination(origin LonLat, distance, bearing float64) LonLat {
	lat1, lon1 := radians(origin.Lat()), radians(origin.Lon())
	d := distance / EarthRadius
	b := radians(bearing)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(b))
	lon2 := lon1 + math.Atan2(math.Sin(b)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return LonLat{degrees(lon2), degrees(lat2)}
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
