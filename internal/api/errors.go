package api

import "fmt"

// NetworkError represents a transport-level failure, including
// client-side timeouts. Nothing was confirmed by the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError represents an HTTP 401. The session is no longer valid and
// the user must log in again.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AuthorizationError represents an HTTP 403. The session is valid but
// the current role may not perform the operation.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ServerRejection represents a well-formed failure response from the
// API. The message is passed through to the user verbatim.
type ServerRejection struct {
	Message string
}

func (e *ServerRejection) Error() string {
	return e.Message
}
