package api

import "fmt"

// ValidationError reports locally rejected input. It is surfaced
// immediately and never sent over the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError reports a network or HTTP-level failure. Callers
// recover it at the boundary into a user-visible fallback message.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a backend envelope missing required
// fields. User-visible handling matches TransportError, but it is
// logged distinctly for diagnosis.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}
