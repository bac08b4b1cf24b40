package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketfarm/pocketfarm-cli/internal/common"
)

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")

	// ErrEmailExists is the sentinel returned when signup hits an
	// already-registered email (HTTP 409). The message is a fixed value
	// that callers may match on directly.
	ErrEmailExists = errors.New("email_exists")
)

// ServerError is a generic non-2xx response carrying the backend's
// human-readable message when one was present in the body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Unwrap maps the status code onto one of the shared sentinel categories so
// callers can classify a failure with errors.Is instead of reading codes.
func (e *ServerError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return common.ErrorUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return common.ErrorInternal
	}
	return nil
}

// EmailNotVerifiedError is reported by /login when the account exists but
// its email is still pending verification. The error message embeds the
// attempted email and pending user id as JSON so callers can recover them.
type EmailNotVerifiedError struct {
	Email  string `json:"email"`
	UserID int    `json:"user_id"`
}

func (e *EmailNotVerifiedError) Error() string {
	payload, _ := json.Marshal(e)
	return "email not verified: " + string(payload)
}

// PasswordPolicyError is reported by /signup when the password violates the
// backend's policy. Error() is the stringified payload; parsing it as JSON
// recovers the original {"password_errors": [...]} object.
type PasswordPolicyError struct {
	PasswordErrors []string `json:"password_errors"`
}

func (e *PasswordPolicyError) Error() string {
	payload, _ := json.Marshal(e)
	return string(payload)
}
