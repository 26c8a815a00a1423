package property

import "reflect"

// Property is a named, typed value with display metadata.
// A Property is not modified after construction; objects replace it instead.
type Property struct {
	name     string
	value    any
	metadata Metadata
}

// Serialized is the persisted form of a Property.
type Serialized struct {
	Name     string   `json:"name"`
	Value    any      `json:"value"`
	Metadata Metadata `json:"metadata"`
}

// New creates a property. If metadata is omitted, it is looked up in the
// well-known property table by name.
func New(name string, value any, metadata ...Metadata) *Property {
	var md Metadata
	if len(metadata) > 0 {
		md = metadata[0].Clone()
	} else {
		md = Lookup(name)
	}
	if md.Type == "" {
		md.Type = TypeString
	}

	return &Property{
		name:     name,
		value:    normalize(md.Type, value),
		metadata: md,
	}
}

// Name returns the property name.
func (p *Property) Name() string {
	return p.name
}

// Value returns the property value. Slices are shared with the property and
// must not be modified; use Clone for an independent copy.
func (p *Property) Value() any {
	return p.value
}

// Metadata returns a copy of the property metadata.
func (p *Property) Metadata() Metadata {
	return p.metadata.Clone()
}

// Type returns the property type tag.
func (p *Property) Type() Type {
	return p.metadata.Type
}

// Readonly reports whether editors should refuse to change the property.
func (p *Property) Readonly() bool {
	return p.metadata.Readonly
}

// DisplayName returns the display name, or the property name if unset.
func (p *Property) DisplayName() string {
	if p.metadata.DisplayName != "" {
		return p.metadata.DisplayName
	}
	return p.name
}

// Float returns the value as a float64 if it is numeric.
func (p *Property) Float() (float64, bool) {
	f, ok := toFloat(p.value)
	return f, ok
}

// Floats returns the value as a []float64 if it is a number array.
func (p *Property) Floats() ([]float64, bool) {
	fs, ok := p.value.([]float64)
	if !ok {
		return nil, false
	}
	return append([]float64(nil), fs...), true
}

// String returns the value as a string if it is one.
func (p *Property) String() (string, bool) {
	s, ok := p.value.(string)
	return s, ok
}

// Bool returns the value as a bool if it is one.
func (p *Property) Bool() (bool, bool) {
	b, ok := p.value.(bool)
	return b, ok
}

// WithValue returns a copy of the property holding a new value.
func (p *Property) WithValue(value any) *Property {
	return New(p.name, value, p.metadata)
}

// Clone returns an independent copy of the property.
func (p *Property) Clone() *Property {
	return &Property{
		name:     p.name,
		value:    normalize(p.metadata.Type, p.value),
		metadata: p.metadata.Clone(),
	}
}

// Equal reports whether two properties have the same name, value and metadata.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name &&
		reflect.DeepEqual(p.value, other.value) &&
		reflect.DeepEqual(p.metadata, other.metadata)
}

// Serialize returns the persisted form of the property.
func (p *Property) Serialize() Serialized {
	c := p.Clone()
	return Serialized{
		Name:     c.name,
		Value:    c.value,
		Metadata: c.metadata,
	}
}

// Deserialize rebuilds a property from its persisted form.
func Deserialize(s Serialized) *Property {
	return New(s.Name, s.Value, s.Metadata)
}
