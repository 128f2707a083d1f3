// Package apperr provides standardized domain error types for the application.
// Pipeline stages return these typed errors, and the HTTP layer middleware
// automatically maps them to appropriate HTTP status codes.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindValidation indicates invalid input data.
	KindValidation
	// KindBadRequest indicates a malformed or invalid request.
	KindBadRequest
	// KindInternal indicates an unexpected internal error.
	KindInternal
	// KindUpstream indicates the completion service or another external
	// collaborator was unreachable or returned a malformed response.
	KindUpstream
	// KindAreaNotFound indicates no prefecture+city pair could be
	// recognized in the input text.
	KindAreaNotFound
	// KindBoundaryLookup indicates the administrative boundary document
	// could not be fetched or contained nothing usable.
	KindBoundaryLookup
	// KindDegenerateBoundary indicates a bounding box could not be derived
	// from the boundary geometry.
	KindDegenerateBoundary
	// KindQuerySynthesis indicates the synthesis response contained no
	// fenced query block.
	KindQuerySynthesis
	// KindQueryExecution indicates a transport or parse failure against the
	// spatial-data query API. Callers may retry the whole resolution.
	KindQueryExecution
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
// Validation-type kinds map to client errors, transport-type kinds to
// server errors.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBadRequest, KindAreaNotFound:
		return http.StatusBadRequest
	case KindBoundaryLookup, KindDegenerateBoundary:
		return http.StatusNotFound
	case KindUpstream, KindQuerySynthesis:
		return http.StatusBadGateway
	case KindQueryExecution:
		return http.StatusServiceUnavailable
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether re-invoking the whole pipeline may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindQueryExecution
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// Upstream creates an upstream service error wrapping the transport cause.
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// AreaNotFound creates an area-not-found error.
func AreaNotFound(message string) *Error {
	return New(KindAreaNotFound, message)
}

// BoundaryLookup creates a boundary lookup error.
func BoundaryLookup(message string, err error) *Error {
	return Wrap(KindBoundaryLookup, message, err)
}

// DegenerateBoundary creates a degenerate boundary error.
func DegenerateBoundary(message string) *Error {
	return New(KindDegenerateBoundary, message)
}

// QuerySynthesis creates a query synthesis error.
func QuerySynthesis(message string) *Error {
	return New(KindQuerySynthesis, message)
}

// QueryExecution creates a query execution error wrapping the transport cause.
func QueryExecution(message string, err error) *Error {
	return Wrap(KindQueryExecution, message, err)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
