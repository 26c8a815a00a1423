package event

import "errors"

// ErrNilHandler is the panic value of Subscribe with a nil handler.
var ErrNilHandler = errors.New("handler cannot be nil")
