package models

import "fmt"

// ValidationError – for input that fails client-side checks before submission.
// Supports errors.As and errors.Is.
//
// ValidationError never reaches the network layer; it is handled at the form level.
type ValidationError struct {
	Field string
	msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.msg)
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, msg: msg}
}

var ErrValidation = &ValidationError{}

// AuthenticationError – for a 401 from the API, meaning the credential is
// invalid or the session has expired. Supports errors.As and errors.Is.
//
// Receiving one triggers the forced-logout behaviour of the request pipeline
// in addition to being surfaced to the caller.
type AuthenticationError struct {
	msg string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return e.msg
}

func (e *AuthenticationError) Is(target error) bool {
	_, ok := target.(*AuthenticationError)
	return ok
}

// NewAuthenticationError creates a new AuthenticationError with the given message.
func NewAuthenticationError(msg string) error {
	return &AuthenticationError{msg: msg}
}

var ErrAuthentication = &AuthenticationError{}

// TransportError – for failures before a response is received (network
// unreachable, timeout). Supports errors.As, errors.Is and errors.Unwrap.
//
// A TransportError never carries an API message and never mutates the session.
type TransportError struct {
	err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// NewTransportError creates a new TransportError wrapping the underlying failure.
func NewTransportError(err error) error {
	return &TransportError{err: err}
}

var ErrTransport = &TransportError{}

// ServerError – for any non-2xx API response other than 401. Supports
// errors.As and errors.Is. The message is extracted from the response body
// when present, else a generic fallback.
type ServerError struct {
	Status int
	msg    string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return e.msg
}

// Message returns the human-readable failure reason.
func (e *ServerError) Message() string {
	return e.msg
}

func (e *ServerError) Is(target error) bool {
	_, ok := target.(*ServerError)
	return ok
}

// NewServerError creates a new ServerError with the given HTTP status and message.
func NewServerError(status int, msg string) error {
	return &ServerError{Status: status, msg: msg}
}

var ErrServer = &ServerError{}
