package property

import "slices"

// Type is the interpretation tag of a property value.
type Type string

// Property types.
const (
	TypeString      Type = "string"
	TypeNumber      Type = "number"
	TypeBoolean     Type = "boolean"
	TypeColor       Type = "color"
	TypeNumberArray Type = "number-array"
)

// Units names the unit of a numeric property.
type Units string

// UnitsMeters is the only unit the editor displays today.
const UnitsMeters Units = "meters"

// Metadata describes how a property is displayed and edited.
type Metadata struct {
	Type        Type     `json:"type"`
	Readonly    bool     `json:"readonly,omitempty"`
	Units       Units    `json:"units,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Default     any      `json:"default,omitempty"`
	Options     []string `json:"options,omitempty"`
	Group       string   `json:"group,omitempty"`
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	clone := m
	clone.Min = cloneFloat(m.Min)
	clone.Max = cloneFloat(m.Max)
	clone.Step = cloneFloat(m.Step)
	clone.Options = slices.Clone(m.Options)
	clone.Default = normalize(m.Type, m.Default)
	return clone
}

// ReadOnly returns a copy of the metadata with the read-only flag set.
func (m Metadata) ReadOnly() Metadata {
	m = m.Clone()
	m.Readonly = true
	return m
}

// Float returns a pointer to v, for the optional numeric metadata fields.
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
