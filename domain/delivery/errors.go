// Package delivery defines the outcome taxonomy for notice delivery
// attempts and the classifier mapping HTTP status codes onto it.
package delivery

import (
	"errors"
	"fmt"
)

// Terminal outcomes signalled by the notices endpoint.
var (
	// ErrRedirected indicates the endpoint replied with a redirect.
	ErrRedirected = errors.New("notices endpoint replied with a redirect")

	// ErrUnauthorized indicates the API key is incorrect or the account
	// is deactivated.
	ErrUnauthorized = errors.New("API key is incorrect or the account is deactivated")

	// ErrUnprocessable indicates the payload could not be processed.
	ErrUnprocessable = errors.New("notice payload could not be processed")

	// ErrRateLimited indicates the project rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer indicates the endpoint replied with an internal server
	// error.
	ErrServer = errors.New("notices endpoint replied with an internal server error")
)

// TimeoutError reports that no response arrived within the delivery
// timeout. The in-flight request is abandoned, but the remote service may
// still have processed it.
type TimeoutError struct {
	// Seconds is the timeout that elapsed.
	Seconds uint64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("delivery timed out after %d seconds", e.Seconds)
}

// UnknownStatusError reports a response status outside the known
// taxonomy.
type UnknownStatusError struct {
	// Code is the HTTP status code received.
	Code int
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("notices endpoint replied with an unknown status code: %d", e.Code)
}

// TransportError reports a failure below the HTTP layer, such as a
// refused connection or a TLS handshake problem.
type TransportError struct {
	// Cause is the underlying transport failure.
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
