// Package property provides the named, typed values held by document objects.
//
// A Property pairs a value with display metadata: a type tag, a read-only
// flag, units, advisory bounds (min, max, step, pattern), a display name, a
// default, a list of options and a group. The bounds are hints for property
// editors; they are never enforced here.
//
// Type tags govern interpretation, not storage. Values are normalized on
// construction so that a property survives a JSON or CBOR round trip
// unchanged: numbers are float64 and number arrays are []float64.
//
// When a property is created without metadata, its metadata is looked up in
// the well-known property table by name, falling back to a plain string.
package property
