package object

import (
	"github.com/google/uuid"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/factory"
	"github.com/dshills/mapforge/internal/property"
)

// Constructor builds a node of one type from its serialized form. The
// Children of data are always empty; Registry attaches them afterwards.
type Constructor func(data Serialized) (Node, error)

// Registry maps object type names to constructors.
type Registry struct {
	types *factory.Registry[Constructor]
}

// NewRegistry creates a registry with the root container type registered.
func NewRegistry() *Registry {
	r := &Registry{types: factory.NewRegistry[Constructor]("object type")}
	_ = r.Register(TypeRoot, func(data Serialized) (Node, error) {
		return FromSerialized(data)
	})
	return r
}

// Register installs ctor for typ. A later registration of the same type
// replaces the earlier one.
func (r *Registry) Register(typ string, ctor Constructor) error {
	return r.types.Register(typ, ctor)
}

// Seal rejects further registrations.
func (r *Registry) Seal() {
	r.types.Seal()
}

// Has reports whether typ is registered.
func (r *Registry) Has(typ string) bool {
	return r.types.Has(typ)
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	return r.types.Names()
}

// Create constructs an empty object of type typ with a fresh GUID.
func (r *Registry) Create(typ, name string, props ...*property.Property) (Node, error) {
	guid := uuid.NewString()
	data := Serialized{
		GUID: guid,
		Properties: []property.Serialized{
			property.New(property.NameName, name).Serialize(),
			property.New(property.NameType, typ).Serialize(),
			property.New(property.NameGUID, guid).Serialize(),
		},
	}
	for _, p := range props {
		data.Properties = append(data.Properties, p.Serialize())
	}
	return r.Build(data)
}

// Build reconstructs a subtree. The type of each node is read from its
// __meta_type property; an unregistered type fails with ErrNotFound.
func (r *Registry) Build(data Serialized) (Node, error) {
	typ := data.Type()
	if typ == "" {
		typ = TypeRoot
	}
	ctor, err := r.types.Lookup(typ)
	if err != nil {
		return nil, err
	}

	shallow := data
	shallow.Children = nil
	node, err := ctor(shallow)
	if err != nil {
		return nil, editerrors.NewOperationError("build object", typ, err)
	}

	base := node.Base()
	children := make([]Node, 0, len(data.Children))
	for _, cd := range data.Children {
		child, err := r.Build(cd)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) > 0 {
		base.silentAttach(children)
	}
	return node, nil
}

// Save returns the typed persisted form of node.
func (r *Registry) Save(node Node) Saved {
	return Saved{Type: node.Type(), Payload: node.Serialize()}
}

// Load rebuilds a node saved with Save.
func (r *Registry) Load(s Saved) (Node, error) {
	data := s.Payload
	if data.Type() == "" && s.Type != "" {
		data.Properties = append(data.Properties, property.New(property.NameType, s.Type).Serialize())
	}
	return r.Build(data)
}
