package shared

import "errors"

// Error codes tagging every failure the store and its transports can report.
const (
	CodeTransport    = "TRANSPORT"
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so sentinels match any message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewTransportError tags a network, timeout or upstream failure.
func NewTransportError(message string) *DomainError {
	if message == "" {
		message = ErrTransport.Message
	}
	return NewDomainError(CodeTransport, message)
}

// NewValidationError tags a rejected payload. An empty message falls back to a generic one.
func NewValidationError(message string) *DomainError {
	if message == "" {
		message = ErrValidation.Message
	}
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError tags an operation against a stale or removed id.
func NewNotFoundError(message string) *DomainError {
	if message == "" {
		message = ErrNotFound.Message
	}
	return NewDomainError(CodeNotFound, message)
}

// NewUnauthorizedError tags a rejected or expired session credential.
func NewUnauthorizedError(message string) *DomainError {
	if message == "" {
		message = ErrUnauthorized.Message
	}
	return NewDomainError(CodeUnauthorized, message)
}

// Common domain errors
var (
	ErrTransport    = NewDomainError(CodeTransport, "Could not reach the sales backend")
	ErrValidation   = NewDomainError(CodeValidation, "The request was rejected by the sales backend")
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Session expired, please sign in again")
)

// CodeOf returns the domain code carried by err, or "" when err is not a domain error.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsTransport reports whether err is tagged as a transport failure.
func IsTransport(err error) bool { return CodeOf(err) == CodeTransport }

// IsValidation reports whether err is tagged as a validation failure.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err is tagged as not-found.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsUnauthorized reports whether err is the fatal session error.
func IsUnauthorized(err error) bool { return CodeOf(err) == CodeUnauthorized }
