package usecase

import "errors"

// ErrUnauthorized is returned before any store is touched when the request
// carries no verified identity.
var ErrUnauthorized = errors.New("Unauthorized")

// ErrOrderNotFound is returned for status lookups on orders the caller does
// not own (or that do not exist).
var ErrOrderNotFound = errors.New("order not found")

// InvalidRequestError marks caller-correctable input problems. The message is
// safe to surface verbatim.
type InvalidRequestError struct {
	Msg string
}

func (e *InvalidRequestError) Error() string { return e.Msg }

func invalidRequest(msg string) error { return &InvalidRequestError{Msg: msg} }

// DependencyError wraps a store failure. The underlying message is preserved
// for diagnostics and surfaced to the caller as a server error.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return e.Err.Error() }
func (e *DependencyError) Unwrap() error { return e.Err }

func dependency(op string, err error) error { return &DependencyError{Op: op, Err: err} }
