package mpw

import "errors"

// Sentinel errors for the request boundary and derivation pipeline
// (spec.md §7). Use errors.Is to test for a specific kind; wrapped errors
// carry additional context via %w.
var (
	// ErrMissingUser means the request's user name was empty.
	ErrMissingUser = errors.New("missing user name")

	// ErrMissingSite means the request's site name was empty.
	ErrMissingSite = errors.New("missing site name")

	// ErrInvalidCounter means the request's site counter was zero.
	ErrInvalidCounter = errors.New("invalid site counter: must be >= 1")

	// ErrUnknownType means the requested password type has no entry in the
	// template catalog.
	ErrUnknownType = errors.New("unknown password type")

	// ErrInvalidTemplate means a selected template references a class
	// letter absent from the character-class catalog.
	ErrInvalidTemplate = errors.New("invalid template: undefined character class")

	// ErrDerivationFailed means scrypt or HMAC reported a failure,
	// typically an allocation failure.
	ErrDerivationFailed = errors.New("derivation failed")
)
