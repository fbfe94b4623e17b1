package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is returned for every non-2xx response. Message comes from the
// response body's "message" field, or is "API Error: <status>" when the body
// carries none.
type APIError struct {
	StatusCode int
	Message    string
	// Detail is the body's "error" field, if any.
	Detail string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// TransportError wraps a failed exchange: the request could not be sent or
// a successful response body could not be decoded.
type TransportError struct {
	// Op is "<METHOD> <path>".
	Op  string
	Err error
	// Decode marks a body decoding failure on a success status.
	Decode bool
}

func (e *TransportError) Error() string {
	if e.Decode {
		return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports network failures as ErrUnavailable.
func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable && !e.Decode
}

// Message returns the text a user should see for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}
	return err.Error()
}
