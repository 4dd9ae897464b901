package model

import "errors"

// Error kinds. Concrete errors wrap one of these so callers can use errors.Is.
var (
	// ErrAuth covers rejected credentials and failed token refreshes.
	ErrAuth = errors.New("authentication failed")
	// ErrRemote covers any non-success status from a data call.
	ErrRemote = errors.New("remote request failed")
	// ErrValidation covers malformed local input, caught before any network call.
	ErrValidation = errors.New("invalid input")
)
