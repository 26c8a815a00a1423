package selection

import (
	"testing"
)

func TestSetOperations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Set)
		want   []string
	}{
		{"set", func(s *Set) { s.Set([]string{"b", "a", "b"}) }, []string{"a", "b"}},
		{"add", func(s *Set) { s.Add("z") }, []string{"x", "y", "z"}},
		{"add existing", func(s *Set) { s.Add("x") }, []string{"x", "y"}},
		{"remove", func(s *Set) { s.Remove("x") }, []string{"y"}},
		{"remove missing", func(s *Set) { s.Remove("q") }, []string{"x", "y"}},
		{"clear", func(s *Set) { s.Clear() }, []string{}},
		{"toggle in", func(s *Set) { s.Toggle("z") }, []string{"x", "y", "z"}},
		{"toggle out", func(s *Set) { s.Toggle("x") }, []string{"y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("x", "y")
			var events []ChangedEvent
			s.Changed().Subscribe(func(e ChangedEvent) { events = append(events, e) })

			tt.mutate(s)

			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].Selection != s {
				t.Error("event does not reference the set")
			}
			if !equalStrings(events[0].Selected, tt.want) {
				t.Errorf("event Selected = %v, want %v", events[0].Selected, tt.want)
			}
			if !equalStrings(s.Slice(), tt.want) {
				t.Errorf("Slice() = %v, want %v", s.Slice(), tt.want)
			}
		})
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := New("a")
	before := s.Clone()

	var count int
	s.Changed().Subscribe(func(ChangedEvent) { count++ })

	s.Toggle("b")
	s.Toggle("b")

	if !s.Equal(before) {
		t.Errorf("set = %v, want %v", s.Slice(), before.Slice())
	}
	if count != 2 {
		t.Errorf("got %d events, want 2", count)
	}
}

func TestEqual(t *testing.T) {
	if !New("a", "b").Equal(New("b", "a")) {
		t.Error("order should not matter")
	}
	if New("a").Equal(New("a", "b")) {
		t.Error("different sizes compared equal")
	}
	if New("a").Equal(New("b")) {
		t.Error("different members compared equal")
	}
	if New().Equal(nil) {
		t.Error("nil compared equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New("a")
	var count int
	s.Changed().Subscribe(func(ChangedEvent) { count++ })

	c := s.Clone()
	c.Add("b")

	if s.Contains("b") {
		t.Error("clone shares storage")
	}
	if count != 0 {
		t.Error("clone shares subscribers")
	}
	if s.Len() != 1 || c.Len() != 2 {
		t.Errorf("Len() = %d/%d, want 1/2", s.Len(), c.Len())
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
