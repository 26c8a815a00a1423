// Package factory provides the name-keyed constructor tables used to rebuild
// polymorphic values from persisted data.
//
// A Registry is populated once at startup, then sealed. Lookups never use
// reflection: the persisted type tag selects a constructor registered under
// that exact name.
package factory

import (
	"sort"
	"sync"

	editerrors "github.com/dshills/mapforge/internal/errors"
)

// Registry maps type names to constructors of type C.
// It is safe for concurrent use.
type Registry[C any] struct {
	mu     sync.RWMutex
	kind   string
	ctors  map[string]C
	sealed bool
}

// NewRegistry creates an empty registry. kind names what the registry
// constructs and appears in lookup errors (e.g. "command type").
func NewRegistry[C any](kind string) *Registry[C] {
	return &Registry[C]{
		kind:  kind,
		ctors: make(map[string]C),
	}
}

// Register adds a constructor under name. The last registration for a name
// wins. It returns ErrSealed once the registry has been sealed.
func (r *Registry[C]) Register(name string, ctor C) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return editerrors.NewOperationError("register", r.kind+" "+name, editerrors.ErrSealed)
	}
	r.ctors[name] = ctor
	return nil
}

// Seal stops further registration. Safe to call multiple times.
func (r *Registry[C]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether the registry has been sealed.
func (r *Registry[C]) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns the constructor registered under name, or a NotFound error.
func (r *Registry[C]) Lookup(name string) (C, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.ctors[name]
	if !ok {
		var zero C
		return zero, editerrors.NewLookupError(r.kind, name)
	}
	return ctor, nil
}

// Has reports whether a constructor is registered under name.
func (r *Registry[C]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry[C]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ctors)
}
