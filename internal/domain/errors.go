package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the search pipeline.
// They are wrapped with context using fmt.Errorf("%w: ...") and checked
// with errors.Is at the adapter edge.
var (
	// ErrValidation indicates required search fields are missing or malformed.
	// It is raised before any network call and is never retried.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates either a missing credential before a call was
	// attempted, or an HTTP 401 from the search endpoint. It is surfaced
	// distinctly so the caller can prompt re-authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenMissing indicates the token endpoint responded 2xx but no token
	// field matched any known key.
	ErrTokenMissing = errors.New("no token field in auth response")

	// ErrUpstream indicates a non-2xx response or transport failure from the
	// vendor relay, other than a 401.
	ErrUpstream = errors.New("upstream error")
)

// UpstreamError describes a failed response from the vendor relay.
// It carries the HTTP status and a snippet of the response body so the
// failure message shown to the caller is actionable.
type UpstreamError struct {
	// StatusCode is the HTTP status returned by the relay (0 for transport errors).
	StatusCode int

	// Body is the response body text, truncated for logging.
	Body string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Body)
}

// Is reports whether target matches the upstream error sentinel,
// so errors.Is(err, ErrUpstream) works for wrapped instances.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NewUpstreamError creates an UpstreamError from an HTTP status and body text.
func NewUpstreamError(status int, body string) *UpstreamError {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return &UpstreamError{StatusCode: status, Body: body}
}
