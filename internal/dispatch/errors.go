package dispatch

import "errors"

// Dispatch errors.
var (
	// ErrDuplicateHandler indicates a handler identifier is already registered.
	ErrDuplicateHandler = errors.New("dispatch: duplicate handler identifier")

	// ErrNilHandler indicates a nil handler was passed to Register.
	ErrNilHandler = errors.New("dispatch: nil handler")

	// ErrNoKeys indicates a handler declared no handled keys.
	ErrNoKeys = errors.New("dispatch: handler declares no keys")
)
