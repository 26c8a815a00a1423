package command

import (
	"encoding/json"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/factory"
	"github.com/dshills/mapforge/internal/object"
)

// Constructor rebuilds a command from its JSON payload.
type Constructor func(payload json.RawMessage) (Command, error)

// Registry maps command type names to constructors.
type Registry struct {
	types *factory.Registry[Constructor]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: factory.NewRegistry[Constructor]("command type")}
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

// Create rebuilds a command. An unregistered type fails with ErrNotFound.
func (r *Registry) Create(saved Saved) (Command, error) {
	ctor, err := r.types.Lookup(saved.Type)
	if err != nil {
		return nil, err
	}
	cmd, err := ctor(saved.Payload)
	if err != nil {
		return nil, editerrors.NewOperationError("create command", saved.Type, err)
	}
	return cmd, nil
}

// Save encodes cmd. It is equivalent to Marshal.
func (r *Registry) Save(cmd Command) (Saved, error) {
	return Marshal(cmd)
}

// RegisterCore installs the built-in commands. DeleteObjectCommand uses
// objects to rebuild deleted subtrees.
func RegisterCore(r *Registry, objects *object.Registry) error {
	if err := r.Register(TypeSetProperty, func(payload json.RawMessage) (Command, error) {
		return decodeSetProperty(payload)
	}); err != nil {
		return err
	}
	if err := r.Register(TypeDeleteObject, func(payload json.RawMessage) (Command, error) {
		return decodeDeleteObject(payload, objects)
	}); err != nil {
		return err
	}
	return r.Register(TypeCompound, func(payload json.RawMessage) (Command, error) {
		return decodeCompound(payload, r)
	})
}
