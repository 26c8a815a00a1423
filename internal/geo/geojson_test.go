package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [13.4, 52.5]},
      "properties": {"name": "depot", "marker-color": "#F00", "population": 3, "open": true, "tags": ["a", 1]}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]},
      "properties": {"title": "route", "stroke-width": 4}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]], [[0.2, 0.2], [0.3, 0.2], [0.2, 0.3], [0.2, 0.2]]]},
      "properties": null
    },
    {
      "type": "Feature",
      "geometry": null,
      "properties": {"name": "empty"}
    }
  ]
}`

func TestImportGeoJSON(t *testing.T) {
	objects, _ := newRegistries(t)
	nodes, err := ImportGeoJSON([]byte(sampleCollection), objects)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	point, ok := nodes[0].(*Point)
	require.True(t, ok)
	assert.Equal(t, "depot", point.Name())
	assert.Equal(t, LonLat{13.4, 52.5}, point.Position())

	color, ok := point.GetProperty("marker-color")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", color.Value())
	assert.Equal(t, property.TypeColor, color.Type())

	pop, _ := point.GetProperty("population")
	assert.Equal(t, 3.0, pop.Value())
	tags, _ := point.GetProperty("tags")
	assert.JSONEq(t, `["a", 1]`, tags.Value().(string))

	line, ok := nodes[1].(*LineString)
	require.True(t, ok)
	assert.Equal(t, "route", line.Name())
	assert.Len(t, line.Points(), 3)

	polygon, ok := nodes[2].(*Polygon)
	require.True(t, ok)
	assert.Len(t, polygon.Ring(), 4, "only the outer ring is kept")

	_, ok = nodes[3].(*Folder)
	assert.True(t, ok)
}

func TestImportSingleFeatureAndGeometry(t *testing.T) {
	objects, _ := newRegistries(t)

	nodes, err := ImportGeoJSON([]byte(`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"__meta_guid":"p1"}}`), objects)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "p1", nodes[0].GUID())

	nodes, err = ImportGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`), objects)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, TypePoint, nodes[0].Type())
}

func TestImportRejects(t *testing.T) {
	objects, _ := newRegistries(t)
	tests := map[string]string{
		"malformed":   `{"type":`,
		"multipoint":  `{"type":"MultiPoint","coordinates":[[1,2]]}`,
		"bad point":   `{"type":"Point","coordinates":["x",2]}`,
		"empty rings": `{"type":"Polygon","coordinates":[]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ImportGeoJSON([]byte(input), objects)
			require.Error(t, err)
			assert.True(t, editerrors.IsInvalidState(err))
		})
	}
}

func TestExportGeoJSON(t *testing.T) {
	objects, _ := newRegistries(t)
	doc, nodes := newMap(t, objects)

	data, err := ExportGeoJSON(doc)
	require.NoError(t, err)

	features := gjson.GetBytes(data, "features").Array()
	require.Len(t, features, 5, "folders are flattened")

	byGUID := map[string]gjson.Result{}
	for _, f := range features {
		byGUID[f.Get("properties."+property.NameGUID).String()] = f
	}

	point := byGUID[nodes["point"].GUID()]
	assert.Equal(t, "Point", point.Get("geometry.type").String())
	assert.Equal(t, 13.4, point.Get("geometry.coordinates.0").Float())
	assert.Equal(t, "#ff0000", point.Get("properties.marker-color").String())
	assert.False(t, point.Get("properties.Latitude").Exists())

	circle := byGUID[nodes["circle"].GUID()]
	assert.Equal(t, "Polygon", circle.Get("geometry.type").String())
	assert.Len(t, circle.Get("geometry.coordinates.0").Array(), circleSteps+1)
	assert.Equal(t, 500.0, circle.Get("properties."+escapeKey(PropCircleRadius)).Float())
}

func TestGeoJSONRoundTrip(t *testing.T) {
	objects, _ := newRegistries(t)
	doc, nodes := newMap(t, objects)

	data, err := ExportGeoJSON(doc)
	require.NoError(t, err)
	imported, err := ImportGeoJSON(data, objects)
	require.NoError(t, err)
	require.Len(t, imported, 5)

	byGUID := map[string]object.Node{}
	for _, n := range imported {
		byGUID[n.GUID()] = n
	}
	for _, key := range []string{"point", "line", "polygon", "circle", "rect"} {
		want := nodes[key]
		got, ok := byGUID[want.GUID()]
		require.True(t, ok, key)
		assert.Equal(t, want.Type(), got.Type(), key)
		assert.Equal(t, want.Name(), got.Name(), key)
	}

	circle := byGUID[nodes["circle"].GUID()].(*Circle)
	assert.Equal(t, 500.0, circle.Radius())
	rect := byGUID[nodes["rect"].GUID()].(*Rectangle)
	nw, se := rect.Corners()
	assert.Equal(t, LonLat{1, 2}, nw)
	assert.Equal(t, LonLat{3, 0}, se)
}

func TestImportDropsDegenerateLines(t *testing.T) {
	objects, _ := newRegistries(t)
	nodes, err := ImportGeoJSON([]byte(`{"type":"FeatureCollection","features":[
	  {"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,1]]},"properties":{}},
	  {"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,1],[2,2]]},"properties":{}}]}`), objects)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}
