package geo

import (
	"math"

	"github.com/dshills/mapforge/internal/object"
)

// Bounds is a bounding box.
type Bounds struct {
	SW LonLat
	NE LonLat
}

// Center returns the center of the box.
func (b Bounds) Center() LonLat {
	return LonLat{(b.SW.Lon() + b.NE.Lon()) / 2, (b.SW.Lat() + b.NE.Lat()) / 2}
}

func (b *Bounds) extend(p LonLat) {
	b.SW = LonLat{math.Min(b.SW.Lon(), p.Lon()), math.Min(b.SW.Lat(), p.Lat())}
	b.NE = LonLat{math.Max(b.NE.Lon(), p.Lon()), math.Max(b.NE.Lat(), p.Lat())}
}

// BoundsOf returns the bounding box of every feature below root. ok is
// false when there are none.
func BoundsOf(root object.Node) (b Bounds, ok bool) {
	walk(root, func(n object.Node) {
		for _, p := range vertices(n) {
			if !ok {
				b, ok = Bounds{SW: p, NE: p}, true
				continue
			}
			b.extend(p)
		}
	})
	return b, ok
}

// TotalLength returns the summed length in meters of every LineString
// below root.
func TotalLength(root object.Node) float64 {
	var total float64
	walk(root, func(n object.Node) {
		if l, ok := n.(*LineString); ok {
			total += l.Length()
		}
	})
	return total
}

// Length returns the path length in meters.
func (l *LineString) Length() float64 {
	points := l.Points()
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

func vertices(n object.Node) []LonLat {
	switch v := n.(type) {
	case *Point:
		return []LonLat{v.Position()}
	case *LineString:
		return v.Points()
	case *Polygon:
		return v.Ring()
	case *Circle:
		return v.Ring()
	case *Rectangle:
		return v.Ring()
	}
	return nil
}

func walk(n object.Node, fn func(object.Node)) {
	fn(n)
	for _, c := range n.Children() {
		walk(c, fn)
	}
}
