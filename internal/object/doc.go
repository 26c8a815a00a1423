// Package object provides the document object tree.
//
// An Object is a GUID-identified node holding an insertion-ordered list of
// properties and a list of children kept sorted by (type, guid). Objects are
// mutated only through AddProperty, UpdateProperty, RemoveProperty, AddChild
// and RemoveChild; each mutation emits a specific event on the object's
// Events channels.
//
// # Bubbling
//
// When a child is attached, its parent takes exactly one subscription on the
// child's Modified channel. Modified fires after every mutation of an object
// and after every Changed it receives from below, so a mutation anywhere in a
// subtree raises a single Changed on each ancestor. Detaching a child cancels
// that subscription and clears the child's parent back reference.
//
// # Types
//
// The object's type and GUID are stored as the reserved read-only properties
// __meta_type and __meta_guid. Richer node types embed *Object and satisfy
// Node through method promotion; the Registry rebuilds them from serialized
// data by type name.
package object
