package auth

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the username/password pair is not accepted.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedSession marks a persisted session that could not be decoded. Restore recovers from it locally.
	ErrMalformedSession = errors.New("malformed persisted session")
)
