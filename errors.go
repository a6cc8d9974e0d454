package softserve

import "errors"

var (
	// ErrNotFound is returned when a path does not name a servable file
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an unexpected I/O error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when a request path is malformed
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutsideRoot is returned when a path resolves outside the served root
	ErrOutsideRoot = errors.New("path outside served root")
	// ErrStreamConsumed is returned when a Stream is iterated a second time
	ErrStreamConsumed = errors.New("stream already consumed")
)
