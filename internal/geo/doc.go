// Package geo provides the map feature object types and the commands that
// edit their geometry.
//
// All geometry lives in ordinary properties so that the generic object
// serialization round-trips every feature:
//
//	Point       Latitude, Longitude
//	LineString  coordinates (flattened lon,lat pairs)
//	Polygon     coordinates (outer ring, flattened lon,lat pairs)
//	Circle      __geo_editor_circle_lat, __geo_editor_circle_lng, __geo_editor_circle_radius
//	Rectangle   __geo_editor_rectangle_{nw,se}_{lat,lng}
//	Folder      no geometry; moving a folder moves its children
//
// Features are imported from and exported to GeoJSON with ImportGeoJSON and
// ExportGeoJSON.
package geo
