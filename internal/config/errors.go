package config

import (
	"errors"
	"fmt"

	"github.com/dshills/mapforge/internal/config/loader"
)

// ErrValidationFailed indicates a setting has an unsupported value.
var ErrValidationFailed = errors.New("validation failed")

// ParseError reports a malformed configuration file or a value of the
// wrong type.
type ParseError = loader.ParseError

// ValidationError names the offending setting.
type ValidationError struct {
	Path    string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Path, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
