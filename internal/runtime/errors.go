package runtime

import (
	"context"
	"errors"
	"net/http"
)

// apiError carries the HTTP status reported by the runtime.
type apiError struct {
	status int
	msg    string
}

func (e apiError) Error() string { return e.msg }

// StatusCode returns the runtime's HTTP status for error mapping upstream.
func (e apiError) StatusCode() int { return e.status }

// IsNotFound reports whether the runtime answered 404 (unknown model/tag).
func IsNotFound(err error) bool {
	var ae apiError
	return errors.As(err, &ae) && ae.status == http.StatusNotFound
}

// unavailableError signals the runtime could not be reached at all
// (connection refused, DNS failure) so callers can map to 503.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unreachable-runtime error.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates an unreachable runtime.
func IsUnavailable(err error) bool {
	var ue unavailableError
	return errors.As(err, &ue)
}

// classifyTransport turns transport-level failures into unavailableError,
// letting context cancellation pass through untouched.
func classifyTransport(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return unavailableError{msg: "runtime unreachable: " + err.Error()}
}
