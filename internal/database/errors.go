package database

import "errors"

var (
	// ErrShortCodeExists is returned when an attempt is made to create
	// a link with a short code that already exists. The unique constraint
	// on links.short_code is the actual safety net; callers retry with a
	// freshly generated code.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrLinkNotFound is returned when no link matches the requested
	// short code. Inaccessible links (expired or deactivated) surface the
	// same error so the outcomes stay indistinguishable.
	ErrLinkNotFound = errors.New("link not found")
	// ErrUserExists is returned when an attempt is made to register a
	// username that is already taken.
	ErrUserExists = errors.New("user exists")
	// ErrUserNotFound is returned when no user matches the requested username.
	ErrUserNotFound = errors.New("user not found")
)
