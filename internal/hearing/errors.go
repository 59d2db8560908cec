package hearing

import "errors"

// Failure categories. Handlers map these to HTTP responses at the request
// boundary; internal detail stays in the server-side logs.
var (
	// ErrNotConfigured indicates a required external credential is missing.
	// Checked before any network call, never retried.
	ErrNotConfigured = errors.New("required credential is not configured")

	// ErrUnauthorized indicates the admin shared secret did not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates the language-model call failed.
	ErrUpstream = errors.New("upstream completion call failed")

	// ErrPersistence indicates a store read or write failed. Non-fatal for
	// chat writes, fatal for admin reads.
	ErrPersistence = errors.New("persistence operation failed")
)
