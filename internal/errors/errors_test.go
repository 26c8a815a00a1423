package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestLookupError(t *testing.T) {
	err := NewLookupError("command type", "Bogus")

	if got, want := err.Error(), `command type "Bogus": not found`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Unwrap() != ErrNotFound {
		t.Error("Unwrap() should return ErrNotFound")
	}

	noKey := &LookupError{Kind: "editor", Err: ErrNotFound}
	if got, want := noKey.Error(), "editor: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("editor", "abc")
	if !IsConflict(err) {
		t.Error("IsConflict should be true")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound should be false")
	}
}

func TestOperationError(t *testing.T) {
	err := NewOperationError("undo", "doc", ErrInvalidState)
	if got, want := err.Error(), "undo doc: invalid state"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	noTarget := NewOperationError("redo", "", ErrInvalidState)
	if got, want := noTarget.Error(), "redo: invalid state"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDerivedSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"sealed", ErrSealed},
		{"no document", ErrNoDocument},
		{"reentrant", ErrReentrant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsInvalidState(tt.err) {
				t.Errorf("%v should wrap ErrInvalidState", tt.err)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !stderrors.Is(wrapped, tt.err) {
				t.Error("wrapping should preserve identity")
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidState, ErrConflict}
	for i, a := range all {
		for j, b := range all {
			if i != j && stderrors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
