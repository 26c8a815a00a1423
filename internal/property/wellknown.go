package property

// Reserved property names every document object carries.
const (
	NameGUID = "__meta_guid"
	NameType = "__meta_type"
	NameName = "name"
)

const hexColorPattern = "^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$"

// wellKnown maps property names to their default metadata.
// Style entries follow the Mapbox simplestyle specification 1.1.0.
var wellKnown = map[string]Metadata{
	NameGUID: {Type: TypeString, Readonly: true, DisplayName: "UniqueId", Group: "Metadata"},
	NameType: {Type: TypeString, Readonly: true, DisplayName: "Type", Group: "Metadata"},
	NameName: {Type: TypeString, DisplayName: "Name"},

	"__line_editor_type": {Type: TypeString, Readonly: true, DisplayName: "Sub-object Type", Group: "Metadata"},

	"__geo_editor_circle_radius": {Type: TypeNumber, Units: UnitsMeters, Min: Float(0), DisplayName: "Circle Radius", Group: "Circle"},
	"__geo_editor_circle_lat":    {Type: TypeNumber, DisplayName: "Circle Lat", Group: "Circle"},
	"__geo_editor_circle_lng":    {Type: TypeNumber, DisplayName: "Circle Lng", Group: "Circle"},

	"__geo_editor_rectangle_nw_lat": {Type: TypeNumber, DisplayName: "North-West Lat", Group: "Rectangle"},
	"__geo_editor_rectangle_nw_lng": {Type: TypeNumber, DisplayName: "North-West Lng", Group: "Rectangle"},
	"__geo_editor_rectangle_se_lat": {Type: TypeNumber, DisplayName: "South-East Lat", Group: "Rectangle"},
	"__geo_editor_rectangle_se_lng": {Type: TypeNumber, DisplayName: "South-East Lng", Group: "Rectangle"},

	"coordinates": {Type: TypeNumberArray, Readonly: true, DisplayName: "Coordinates", Group: "Geometry"},

	"title":       {Type: TypeString, DisplayName: "Title"},
	"description": {Type: TypeString, DisplayName: "Description"},

	"marker-size": {
		Type:        TypeString,
		DisplayName: "Marker Size",
		Options:     []string{"small", "medium", "large"},
		Default:     "medium",
		Group:       "Marker style",
	},
	"marker-color":  {Type: TypeColor, Pattern: hexColorPattern, DisplayName: "Marker Color", Default: "#7e7e7e", Group: "Marker style"},
	"marker-symbol": {Type: TypeString, DisplayName: "Marker Symbol", Group: "Marker style"},

	"stroke":         {Type: TypeColor, Pattern: hexColorPattern, DisplayName: "Stroke", Default: "#555555", Group: "Stroke style"},
	"stroke-width":   {Type: TypeNumber, Min: Float(0), Step: Float(1), DisplayName: "Stroke Width", Default: 2.0, Group: "Stroke style"},
	"stroke-opacity": {Type: TypeNumber, Min: Float(0), Max: Float(1), Step: Float(0.1), DisplayName: "Stroke Opacity", Default: 1.0, Group: "Stroke style"},

	"fill":         {Type: TypeColor, Pattern: hexColorPattern, DisplayName: "Fill", Default: "#555555", Group: "Fill style"},
	"fill-opacity": {Type: TypeNumber, Min: Float(0), Max: Float(1), Step: Float(0.1), DisplayName: "Fill Opacity", Default: 0.6, Group: "Fill style"},

	"styleHash":    {Type: TypeString, Readonly: true, DisplayName: "Style Hash", Group: "Style"},
	"styleMapHash": {Type: TypeString, Readonly: true, DisplayName: "Style Map Hash", Group: "Style"},
	"styleUrl":     {Type: TypeString, DisplayName: "Style URL", Group: "Style"},

	"line-dasharray": {Type: TypeNumberArray, DisplayName: "Line Dash Array", Default: []float64{1}, Group: "Line style"},
	"line-color":     {Type: TypeColor, Pattern: hexColorPattern, DisplayName: "Line Color", Default: "#555555", Group: "Line style"},
	"line-width":     {Type: TypeNumber, DisplayName: "Line Width", Default: 2.0, Group: "Line style"},
}

// Lookup returns the metadata registered for name, or plain string metadata
// displaying the name itself.
func Lookup(name string) Metadata {
	if md, ok := wellKnown[name]; ok {
		return md.Clone()
	}
	return Metadata{Type: TypeString, DisplayName: name}
}

// IsWellKnown reports whether name has registered metadata.
func IsWellKnown(name string) bool {
	_, ok := wellKnown[name]
	return ok
}
