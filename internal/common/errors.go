// Sentinel errors shared by the API client, repositories and services.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrInvalidEmail = errors.New("invalid email format")

	// Session errors.
	ErrNoUserLoggedIn = errors.New("no user logged in")
)
