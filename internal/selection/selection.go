// Package selection provides the set of selected object GUIDs.
package selection

import (
	"sort"

	"github.com/dshills/mapforge/internal/event"
)

// ChangedEvent is emitted after every mutation of a Set.
type ChangedEvent struct {
	Selection *Set
	// Selected is a sorted snapshot of the set after the mutation.
	Selected []string
}

// Set is an unordered set of GUIDs. GUIDs that do not resolve to an object
// are allowed.
type Set struct {
	guids   map[string]struct{}
	changed event.Channel[ChangedEvent]
}

// New creates a set holding guids.
func New(guids ...string) *Set {
	s := &Set{guids: make(map[string]struct{}, len(guids))}
	for _, g := range guids {
		s.guids[g] = struct{}{}
	}
	return s
}

// Changed returns the channel notified after each mutation.
func (s *Set) Changed() *event.Channel[ChangedEvent] {
	return &s.changed
}

// Set replaces the contents with guids.
func (s *Set) Set(guids []string) {
	s.guids = make(map[string]struct{}, len(guids))
	for _, g := range guids {
		s.guids[g] = struct{}{}
	}
	s.emit()
}

// Add inserts guid.
func (s *Set) Add(guid string) {
	s.guids[guid] = struct{}{}
	s.emit()
}

// Remove deletes guid.
func (s *Set) Remove(guid string) {
	delete(s.guids, guid)
	s.emit()
}

// Clear empties the set.
func (s *Set) Clear() {
	s.guids = make(map[string]struct{})
	s.emit()
}

// Toggle adds guid if absent and removes it otherwise.
func (s *Set) Toggle(guid string) {
	if _, ok := s.guids[guid]; ok {
		delete(s.guids, guid)
	} else {
		s.guids[guid] = struct{}{}
	}
	s.emit()
}

// Contains reports whether guid is selected.
func (s *Set) Contains(guid string) bool {
	_, ok := s.guids[guid]
	return ok
}

// Len returns the number of selected GUIDs.
func (s *Set) Len() int {
	return len(s.guids)
}

// Slice returns the GUIDs in sorted order.
func (s *Set) Slice() []string {
	out := make([]string, 0, len(s.guids))
	for g := range s.guids {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same GUIDs.
func (s *Set) Equal(other *Set) bool {
	if other == nil || len(s.guids) != len(other.guids) {
		return false
	}
	for g := range s.guids {
		if _, ok := other.guids[g]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy without subscribers.
func (s *Set) Clone() *Set {
	return New(s.Slice()...)
}

func (s *Set) emit() {
	s.changed.Emit(ChangedEvent{Selection: s, Selected: s.Slice()})
}
