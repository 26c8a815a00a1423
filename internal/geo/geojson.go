package geo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// ImportGeoJSON converts a FeatureCollection, a Feature or a bare geometry
// into objects built through objects. LineStrings with fewer than two
// positions are dropped. A __meta_guid property keeps the
// object identity; other features get fresh GUIDs. Polygons carrying the
// circle or rectangle properties become Circle and Rectangle objects.
func ImportGeoJSON(data []byte, objects *object.Registry) ([]object.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, editerrors.NewOperationError("import geojson", "",
			fmt.Errorf("malformed json: %w", editerrors.ErrInvalidState))
	}
	doc := gjson.ParseBytes(data)

	var features []gjson.Result
	switch doc.Get("type").String() {
	case "FeatureCollection":
		features = doc.Get("features").Array()
	case "Feature":
		features = []gjson.Result{doc}
	default:
		features = []gjson.Result{gjson.Parse(`{"type":"Feature","geometry":` + doc.Raw + `}`)}
	}

	nodes := make([]object.Node, 0, len(features))
	for i, f := range features {
		if degenerateLine(f.Get("geometry")) {
			continue
		}
		sd, err := featureToSerialized(f)
		if err != nil {
			return nil, editerrors.NewOperationError("import geojson", fmt.Sprintf("feature %d", i), err)
		}
		node, err := objects.Build(sd)
		if err != nil {
			return nil, editerrors.NewOperationError("import geojson", fmt.Sprintf("feature %d", i), err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// degenerateLine reports a LineString with fewer than two positions, which
// some KML and GPX converters emit for empty tracks.
func degenerateLine(g gjson.Result) bool {
	return g.Get("type").String() == "LineString" && len(g.Get("coordinates").Array()) < 2
}

func featureToSerialized(f gjson.Result) (object.Serialized, error) {
	props := f.Get("properties")

	guid := props.Get(escapeKey(property.NameGUID)).String()
	if guid == "" {
		guid = uuid.NewString()
	}
	name := props.Get("name").String()
	if name == "" {
		name = props.Get("title").String()
	}

	typ, geometry, err := geometryProperties(f.Get("geometry"), props)
	if err != nil {
		return object.Serialized{}, err
	}

	out := object.Serialized{
		GUID: guid,
		Properties: []property.Serialized{
			property.New(property.NameName, name).Serialize(),
			property.New(property.NameType, typ).Serialize(),
			property.New(property.NameGUID, guid).Serialize(),
		},
	}
	skip := map[string]bool{property.NameName: true, property.NameType: true, property.NameGUID: true}
	for _, p := range geometry {
		skip[p.Name()] = true
	}

	props.ForEach(func(key, value gjson.Result) bool {
		if !skip[key.String()] {
			out.Properties = append(out.Properties, importedProperty(key.String(), jsonValue(value)).Serialize())
		}
		return true
	})
	for _, p := range geometry {
		out.Properties = append(out.Properties, p.Serialize())
	}
	return out, nil
}

// geometryProperties returns the object type and geometry properties for a
// GeoJSON geometry. A null geometry yields an empty Folder.
func geometryProperties(g, props gjson.Result) (string, []*property.Property, error) {
	coords := g.Get("coordinates")
	switch g.Get("type").String() {
	case "":
		return TypeFolder, nil, nil
	case "Point":
		pos, err := position(coords)
		if err != nil {
			return "", nil, err
		}
		return TypePoint, []*property.Property{
			readonlyNumber(PropLatitude, pos.Lat()),
			readonlyNumber(PropLongitude, pos.Lon()),
		}, nil
	case "LineString":
		points, err := positions(coords)
		if err != nil {
			return "", nil, err
		}
		return TypeLineString, []*property.Property{property.New(PropCoordinates, flatten(points))}, nil
	case "Polygon":
		if props.Get(escapeKey(PropCircleRadius)).Exists() {
			return TypeCircle, numbers(props, PropCircleLat, PropCircleLng, PropCircleRadius), nil
		}
		if props.Get(escapeKey(PropRectNWLat)).Exists() {
			return TypeRectangle, numbers(props, PropRectNWLat, PropRectNWLng, PropRectSELat, PropRectSELng), nil
		}
		rings := coords.Array()
		if len(rings) == 0 {
			return "", nil, fmt.Errorf("polygon without rings: %w", editerrors.ErrInvalidState)
		}
		ring, err := positions(rings[0])
		if err != nil {
			return "", nil, err
		}
		return TypePolygon, []*property.Property{property.New(PropCoordinates, flatten(ring))}, nil
	default:
		return "", nil, fmt.Errorf("unsupported geometry %q: %w", g.Get("type").String(), editerrors.ErrInvalidState)
	}
}

func numbers(props gjson.Result, names ...string) []*property.Property {
	out := make([]*property.Property, 0, len(names))
	for _, n := range names {
		if v := props.Get(escapeKey(n)); v.Type == gjson.Number {
			out = append(out, property.New(n, v.Float()))
		}
	}
	return out
}

func position(r gjson.Result) (LonLat, error) {
	pair := r.Array()
	if len(pair) < 2 || pair[0].Type != gjson.Number || pair[1].Type != gjson.Number {
		return LonLat{}, fmt.Errorf("bad position %s: %w", r.Raw, editerrors.ErrInvalidState)
	}
	return LonLat{pair[0].Float(), pair[1].Float()}, nil
}

func positions(r gjson.Result) ([]LonLat, error) {
	items := r.Array()
	out := make([]LonLat, 0, len(items))
	for _, item := range items {
		p, err := position(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// jsonValue maps a property value onto the types property values use.
// Objects and mixed arrays are kept as their raw JSON text.
func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Number:
		return r.Float()
	case gjson.True, gjson.False:
		return r.Bool()
	case gjson.Null:
		return ""
	}
	if r.IsArray() {
		items := r.Array()
		fs := make([]float64, 0, len(items))
		for _, item := range items {
			if item.Type != gjson.Number {
				return r.Raw
			}
			fs = append(fs, item.Float())
		}
		return fs
	}
	return r.Raw
}

// ExportGeoJSON writes every feature below root as a FeatureCollection.
// Folders are flattened. Circles are written as polygons approximating
// the circle, rectangles as their outline; both keep their editor
// properties so ImportGeoJSON restores them.
func ExportGeoJSON(root object.Node) ([]byte, error) {
	out := []byte(`{"type":"FeatureCollection","features":[]}`)
	var visit func(n object.Node) error
	visit = func(n object.Node) error {
		feature, ok, err := exportFeature(n)
		if err != nil {
			return editerrors.NewOperationError("export geojson", n.GUID(), err)
		}
		if ok {
			if out, err = sjson.SetRawBytes(out, "features.-1", feature); err != nil {
				return err
			}
		}
		for _, c := range n.Children() {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range root.Children() {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func exportFeature(n object.Node) ([]byte, bool, error) {
	var (
		geomType string
		coords   any
		skip     = map[string]bool{property.NameType: true}
	)
	switch v := n.(type) {
	case *Point:
		geomType, coords = "Point", v.Position()
		skip[PropLatitude], skip[PropLongitude] = true, true
	case *LineString:
		geomType, coords = "LineString", v.Points()
		skip[PropCoordinates] = true
	case *Polygon:
		geomType, coords = "Polygon", [][]LonLat{v.Ring()}
		skip[PropCoordinates] = true
	case *Circle:
		geomType, coords = "Polygon", [][]LonLat{v.Ring()}
	case *Rectangle:
		geomType, coords = "Polygon", [][]LonLat{v.Ring()}
	default:
		return nil, false, nil
	}

	f := []byte(`{"type":"Feature","geometry":{},"properties":{}}`)
	var err error
	if f, err = sjson.SetBytes(f, "geometry.type", geomType); err != nil {
		return nil, false, err
	}
	if f, err = sjson.SetBytes(f, "geometry.coordinates", coords); err != nil {
		return nil, false, err
	}
	for _, p := range n.Properties() {
		if skip[p.Name()] {
			continue
		}
		if f, err = sjson.SetBytes(f, "properties."+escapeKey(p.Name()), p.Value()); err != nil {
			return nil, false, err
		}
	}
	return f, true, nil
}

var keyEscaper = strings.NewReplacer(`.`, `\.`, `*`, `\*`, `?`, `\?`)

// escapeKey quotes the gjson path syntax characters in a property name.
func escapeKey(name string) string {
	return keyEscaper.Replace(name)
}
