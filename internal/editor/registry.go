package editor

import (
	"sort"
	"sync"

	editerrors "github.com/dshills/mapforge/internal/errors"
)

// Registry tracks live editors by GUID.
type Registry struct {
	mu      sync.RWMutex
	editors map[string]*Editor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{editors: make(map[string]*Editor)}
}

// Add registers e. It fails with ErrConflict if the GUID is taken.
func (r *Registry) Add(e *Editor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.editors[e.guid]; ok {
		return editerrors.NewConflictError("editor", e.guid)
	}
	r.editors[e.guid] = e
	return nil
}

// Remove deregisters the editor with the given GUID.
func (r *Registry) Remove(guid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.editors[guid]; !ok {
		return editerrors.NewLookupError("editor", guid)
	}
	delete(r.editors, guid)
	return nil
}

// Get returns the editor with the given GUID.
func (r *Registry) Get(guid string) (*Editor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.editors[guid]
	if !ok {
		return nil, editerrors.NewLookupError("editor", guid)
	}
	return e, nil
}

// List returns the registered editors ordered by GUID.
func (r *Registry) List() []*Editor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Editor, 0, len(r.editors))
	for _, e := range r.editors {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].guid < out[j].guid })
	return out
}

// Len returns the number of registered editors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.editors)
}
