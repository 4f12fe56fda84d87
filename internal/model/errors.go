package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySymbol   = errors.New("ticker symbol cannot be empty")
	ErrSymbolTooLong = errors.New("ticker symbol too long (max 10 characters)")
	ErrSymbolFormat  = errors.New("invalid ticker format (use letters, numbers, dots, and hyphens only)")
)

// ValidationError is returned for input rejected before any request is made.
type ValidationError struct {
	Input  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid symbol %q: %v", e.Input, e.Reason)
}
func (e *ValidationError) Unwrap() error { return e.Reason }

// NetworkError is a transport failure or timeout talking to an endpoint.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: network: %v", e.Endpoint, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-success response status from an endpoint.
type HTTPError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: status %d, body: %s", e.Endpoint, e.Status, e.Body)
}

// DecodeError is a payload that does not match the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("%s: decode: %v", e.Endpoint, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsFetchError reports whether err carries one of the fetch failure kinds
// (network, HTTP status, decode).
func IsFetchError(err error) bool {
	var (
		ne *NetworkError
		he *HTTPError
		de *DecodeError
	)
	return errors.As(err, &ne) || errors.As(err, &he) || errors.As(err, &de)
}
