package engine

import "errors"

var (
	// ErrDeadlineExceeded is the cancellation cause seen by handlers whose
	// request outlived the configured timeout.
	ErrDeadlineExceeded = errors.New("engine: request deadline exceeded")

	// ErrUnknownHandler is returned by New when a route names a handler that is
	// not in the table.
	ErrUnknownHandler = errors.New("engine: route references unknown handler")

	// ErrNilHandler is returned by New when the table contains a nil handler.
	ErrNilHandler = errors.New("engine: nil handler")

	// ErrInvalidRoute is returned by New when a route cannot be registered.
	ErrInvalidRoute = errors.New("engine: invalid route")
)
