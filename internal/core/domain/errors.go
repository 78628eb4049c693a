package domain

import "errors"

var (
	// ErrInvalidRequest marks missing or malformed input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrConflict marks a uniqueness violation (handle or email taken).
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a login attempt never learns which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated marks a missing, malformed, expired or superseded
	// token. The account behind a token vanishing maps here too, not to
	// ErrNotFound, to avoid leaking account existence.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks an authenticated caller acting on someone
	// else's resource.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	ErrInternal  = errors.New("internal server error")
)
