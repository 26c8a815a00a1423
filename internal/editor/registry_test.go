package editor

import (
	"testing"

	editerrors "github.com/dshills/mapforge/internal/errors"
)

func TestRegistryAddRemove(t *testing.T) {
	reg := NewRegistry()

	ed, err := New(reg, nil, WithGUID("one"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}

	got, err := reg.Get("one")
	if err != nil || got != ed {
		t.Errorf("Get() = %v, %v", got, err)
	}

	if err := ed.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := ed.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", reg.Len())
	}
	if _, err := reg.Get("one"); !editerrors.IsNotFound(err) {
		t.Errorf("Get() after Close error = %v, want not found", err)
	}
}

func TestRegistryDuplicateGUID(t *testing.T) {
	reg := NewRegistry()
	if _, err := New(reg, nil, WithGUID("dup")); err != nil {
		t.Fatal(err)
	}

	_, err := New(reg, nil, WithGUID("dup"))
	if !editerrors.IsConflict(err) {
		t.Errorf("New() with duplicate GUID error = %v, want conflict", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryRemoveUnknown(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Remove("missing"); !editerrors.IsNotFound(err) {
		t.Errorf("Remove() error = %v, want not found", err)
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()
	for _, guid := range []string{"c", "a", "b"} {
		if _, err := New(reg, nil, WithGUID(guid)); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for _, ed := range reg.List() {
		got = append(got, ed.GUID())
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

func TestClosedEditorRejectsCommands(t *testing.T) {
	reg := NewRegistry()
	ed, err := New(reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = ed.Close()
	if err := ed.Undo(); !editerrors.IsInvalidState(err) {
		t.Errorf("Undo() after Close error = %v", err)
	}
}
