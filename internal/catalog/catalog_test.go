package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mapforge/internal/command"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/geo"
	"github.com/dshills/mapforge/internal/object"
)

func TestDefaultIsBuiltOnce(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestDefaultTypes(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		command.TypeCompound,
		geo.TypeCreateFeature,
		command.TypeDeleteObject,
		geo.TypeMoveObject,
		command.TypeSetProperty,
		geo.TypeUpdateFeature,
	}, c.Commands.Types())

	for _, typ := range []string{object.TypeRoot, geo.TypeFolder, geo.TypePoint, geo.TypeLineString,
		geo.TypePolygon, geo.TypeCircle, geo.TypeRectangle} {
		assert.True(t, c.Objects.Has(typ), typ)
	}
}

func TestDefaultIsSealed(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	err = c.Commands.Register("Custom", func(json.RawMessage) (command.Command, error) { return nil, nil })
	assert.ErrorIs(t, err, editerrors.ErrSealed)
	err = c.Objects.Register("Custom", func(object.Serialized) (object.Node, error) { return nil, nil })
	assert.ErrorIs(t, err, editerrors.ErrSealed)
}

func TestNewAcceptsExtensions(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Objects.Register("Marker", func(data object.Serialized) (object.Node, error) {
		return object.FromSerialized(data)
	}))
	c.Seal()

	node, err := c.Objects.Create("Marker", "m")
	require.NoError(t, err)
	assert.Equal(t, "Marker", node.Type())
}
