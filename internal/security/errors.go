package security

import "errors"

// Security errors.
var (
	// ErrInsufficientAuthorization indicates the requesting level is below
	// the minimum required for the operation.
	ErrInsufficientAuthorization = errors.New("security: insufficient authorization")

	// ErrUnknownFlag indicates the named feature flag is not defined.
	ErrUnknownFlag = errors.New("security: unknown feature flag")
)
