package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mapforge/internal/codec"
)

func TestNewWithoutMetadataUsesWellKnown(t *testing.T) {
	p := New("stroke-width", 3)

	assert.Equal(t, TypeNumber, p.Type())
	assert.Equal(t, "Stroke Width", p.DisplayName())
	assert.Equal(t, 3.0, p.Value(), "numbers are normalized to float64")
	md := p.Metadata()
	require.NotNil(t, md.Min)
	assert.Equal(t, 0.0, *md.Min)
	assert.Equal(t, "Stroke style", md.Group)
}

func TestNewWithoutMetadataDefaultsToString(t *testing.T) {
	p := New("custom", "value")

	assert.Equal(t, TypeString, p.Type())
	assert.Equal(t, "custom", p.Metadata().DisplayName)
	assert.False(t, p.Readonly())
}

func TestNewWithExplicitMetadata(t *testing.T) {
	p := New("name", "ignored table", Metadata{Type: TypeString, Readonly: true})
	assert.True(t, p.Readonly())
	assert.Equal(t, "name", p.DisplayName(), "explicit metadata replaces the table entry")

	empty := New("x", "y", Metadata{})
	assert.Equal(t, TypeString, empty.Type(), "empty type defaults to string")
}

func TestNormalization(t *testing.T) {
	tests := []struct {
		name  string
		md    Metadata
		value any
		want  any
	}{
		{"int to float", Metadata{Type: TypeNumber}, 7, 7.0},
		{"uint64 to float", Metadata{Type: TypeNumber}, uint64(9), 9.0},
		{"float32 to float", Metadata{Type: TypeNumber}, float32(0.5), 0.5},
		{"ints to floats", Metadata{Type: TypeNumberArray}, []int{1, 2}, []float64{1, 2}},
		{"decoded array", Metadata{Type: TypeNumberArray}, []any{1.0, uint64(2)}, []float64{1, 2}},
		{"mismatched stays", Metadata{Type: TypeNumber}, "n/a", "n/a"},
		{"boolean", Metadata{Type: TypeBoolean}, true, true},
		{"color", Metadata{Type: TypeColor}, "#fff", "#fff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("p", tt.value, tt.md)
			assert.Equal(t, tt.want, p.Value())
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New("coords", []float64{1, 2}, Metadata{
		Type:    TypeNumberArray,
		Min:     Float(0),
		Options: []string{"a"},
	})
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	orig.Value().([]float64)[0] = 99
	*orig.metadata.Min = 42
	orig.metadata.Options[0] = "changed"

	assert.Equal(t, []float64{1, 2}, clone.Value())
	assert.Equal(t, 0.0, *clone.Metadata().Min)
	assert.Equal(t, []string{"a"}, clone.Metadata().Options)
}

func TestMetadataAccessorReturnsCopy(t *testing.T) {
	p := New("marker-size", "small")
	md := p.Metadata()
	md.Options[0] = "huge"
	md.Readonly = true

	assert.Equal(t, []string{"small", "medium", "large"}, p.Metadata().Options)
	assert.False(t, p.Readonly())
}

func TestWithValue(t *testing.T) {
	p := New("fill-opacity", 0.2)
	q := p.WithValue(1)

	assert.Equal(t, 0.2, p.Value())
	assert.Equal(t, 1.0, q.Value())
	assert.Equal(t, p.Metadata(), q.Metadata())
}

func TestTypedAccessors(t *testing.T) {
	f, ok := New("line-width", 4).Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	fs, ok := New("line-dasharray", []float64{2, 1}).Floats()
	assert.True(t, ok)
	assert.Equal(t, []float64{2, 1}, fs)

	s, ok := New("title", "Home").String()
	assert.True(t, ok)
	assert.Equal(t, "Home", s)

	b, ok := New("visible", true, Metadata{Type: TypeBoolean}).Bool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = New("title", "Home").Float()
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	a := New("title", "x")
	assert.True(t, a.Equal(New("title", "x")))
	assert.False(t, a.Equal(New("title", "y")))
	assert.False(t, a.Equal(New("description", "x")))
	assert.False(t, a.Equal(nil))

	var nilProp *Property
	assert.True(t, nilProp.Equal(nil))
}

func TestSerializeRoundTrip(t *testing.T) {
	props := []*Property{
		New("name", "Depot"),
		New("stroke-opacity", 0.5),
		New("line-dasharray", []float64{4, 2, 1}),
		New("marker-size", "large"),
		New("visible", false, Metadata{Type: TypeBoolean, Group: "Display"}),
		New("radius", 12.5, Metadata{
			Type:        TypeNumber,
			Units:       UnitsMeters,
			Min:         Float(0),
			Max:         Float(1000),
			Step:        Float(0.5),
			DisplayName: "Radius",
			Default:     10,
		}),
		New("code", "AB-1", Metadata{Type: TypeString, Pattern: "^[A-Z]{2}-\\d$", Readonly: true}),
	}

	for _, p := range props {
		t.Run("memory/"+p.Name(), func(t *testing.T) {
			assert.True(t, p.Equal(Deserialize(p.Serialize())))
		})

		for _, c := range []codec.Codec{codec.JSON, codec.CBOR} {
			t.Run(c.Name()+"/"+p.Name(), func(t *testing.T) {
				data, err := c.Marshal(p.Serialize())
				require.NoError(t, err)

				var s Serialized
				require.NoError(t, c.Unmarshal(data, &s))
				restored := Deserialize(s)

				assert.True(t, p.Equal(restored), "got %+v, want %+v", restored.Serialize(), p.Serialize())

				again, err := c.Marshal(restored.Serialize())
				require.NoError(t, err)
				assert.Equal(t, data, again)
			})
		}
	}
}

func TestLookup(t *testing.T) {
	assert.True(t, IsWellKnown(NameGUID))
	assert.True(t, Lookup(NameGUID).Readonly)
	assert.True(t, Lookup(NameType).Readonly)
	assert.False(t, IsWellKnown("no-such-property"))

	md := Lookup("marker-size")
	md.Options[0] = "tiny"
	assert.Equal(t, "small", Lookup("marker-size").Options[0], "Lookup returns copies")
}
