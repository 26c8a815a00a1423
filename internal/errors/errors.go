// Package errors defines the error taxonomy shared by the document engine.
//
// Every failure in the engine is a deterministic precondition violation and
// falls into one of three kinds:
//
//   - ErrNotFound: an unknown factory type tag, a missing child GUID, or an
//     unregistered editor GUID.
//   - ErrInvalidState: undo/redo outside the valid caret range, or an editor
//     operation issued with no document loaded.
//   - ErrConflict: registering an editor GUID that already exists.
//
// Callers classify errors with errors.Is or the Is* helpers below.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound indicates a lookup by name or GUID found nothing.
	ErrNotFound = stderrors.New("not found")

	// ErrInvalidState indicates an operation was called in a state that does
	// not permit it.
	ErrInvalidState = stderrors.New("invalid state")

	// ErrConflict indicates an identifier is already taken.
	ErrConflict = stderrors.New("conflict")

	// ErrSealed indicates a registry no longer accepts registrations.
	ErrSealed = fmt.Errorf("registry sealed: %w", ErrInvalidState)

	// ErrNoDocument indicates an editor operation was issued with no document.
	ErrNoDocument = fmt.Errorf("no document loaded: %w", ErrInvalidState)

	// ErrReentrant indicates a command was issued while another one was
	// still being applied.
	ErrReentrant = fmt.Errorf("command already in progress: %w", ErrInvalidState)
)

// LookupError records a failed lookup of a key in a named table.
type LookupError struct {
	Kind string // "command type", "object type", "child", "editor", ...
	Key  string
	Err  error
}

// NewLookupError creates a LookupError wrapping ErrNotFound.
func NewLookupError(kind, key string) *LookupError {
	return &LookupError{Kind: kind, Key: key, Err: ErrNotFound}
}

// NewConflictError creates a LookupError wrapping ErrConflict.
func NewConflictError(kind, key string) *LookupError {
	return &LookupError{Kind: kind, Key: key, Err: ErrConflict}
}

func (e *LookupError) Error() string {
	if e.Key == "" {
		return e.Kind + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %q: %s", e.Kind, e.Key, e.Err.Error())
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// OperationError records which operation failed on which target.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e.Target == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Target + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsInvalidState reports whether err is or wraps ErrInvalidState.
func IsInvalidState(err error) bool {
	return stderrors.Is(err, ErrInvalidState)
}

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool {
	return stderrors.Is(err, ErrConflict)
}
