package service

import "errors"

// Error taxonomy returned by the services. Handlers map these onto HTTP
// status codes; anything not in this set is an internal failure.
var (
	// ErrValidation signals a missing required field.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials signals an unknown email or a password mismatch.
	// Both causes share this error so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrConflict signals a duplicate email or username at signup.
	ErrConflict = errors.New("username or email already in use")
	// ErrNotFound signals an absent user, or an absent todo within a user.
	ErrNotFound = errors.New("not found")
)
