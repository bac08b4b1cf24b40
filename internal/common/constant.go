// Package common contains shared constants and sentinel errors used across
// PocketFarm client components.
package common

// AuthorizationHeaderName carries the bearer-style user token on requests
// that need an authenticated caller.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id on every
// outbound call.
const RequestIDHeaderName = "X-Request-Id"
