package engine

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ model string }

func (e tooBusyError) Error() string { return "too busy: " + e.model }

// ErrTooBusy constructs a backpressure error for the given model.
func ErrTooBusy(model string) error { return tooBusyError{model: model} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// indexEmptyError signals that ask was called before anything was indexed.
type indexEmptyError struct{}

func (indexEmptyError) Error() string { return "index is empty: fetch and index documents first" }

// ErrIndexEmpty constructs the empty-index error.
func ErrIndexEmpty() error { return indexEmptyError{} }

// IsIndexEmpty reports whether err indicates an empty vector index.
func IsIndexEmpty(err error) bool {
	_, ok := err.(indexEmptyError)
	return ok
}

// sessionNotFoundError signals an unknown chat session id.
type sessionNotFoundError struct{ id string }

func (e sessionNotFoundError) Error() string { return "session not found: " + e.id }

// ErrSessionNotFound constructs an unknown-session error.
func ErrSessionNotFound(id string) error { return sessionNotFoundError{id: id} }

// IsSessionNotFound reports whether err indicates a missing session id.
func IsSessionNotFound(err error) bool {
	_, ok := err.(sessionNotFoundError)
	return ok
}
