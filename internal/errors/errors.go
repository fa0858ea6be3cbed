// Package errors provides standardized domain errors with codes for leafdex.
//
// Usage:
//
//	// In pipeline code - return typed errors
//	if enrichment == nil {
//	    return errors.MissingEnrichment("villager", id)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    // treat as absent
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application. The last five correspond to
// the failure modes of the index rebuild pipeline.
const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION"
	CodeInternal          Code = "INTERNAL"
	CodeConfiguration     Code = "CONFIGURATION"
	CodeMissingEnrichment Code = "MISSING_ENRICHMENT"
	CodeWrite             Code = "WRITE"
	CodePointerStore      Code = "POINTER_STORE"
	CodeReclaim           Code = "RECLAIM"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
// Only the read-side search API maps errors onto HTTP responses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
	ErrConfiguration     = &Error{Code: CodeConfiguration, Message: "index configuration rejected"}
	ErrMissingEnrichment = &Error{Code: CodeMissingEnrichment, Message: "enrichment missing"}
	ErrWrite             = &Error{Code: CodeWrite, Message: "document write rejected"}
	ErrPointerStore      = &Error{Code: CodePointerStore, Message: "pointer store write failed"}
	ErrReclaim           = &Error{Code: CodeReclaim, Message: "old index reclaim failed"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Configuration creates an index configuration error. Fatal to a rebuild:
// it fires before any document has been written.
func Configuration(msg string) *Error {
	return &Error{Code: CodeConfiguration, Message: msg}
}

// MissingEnrichment creates an error for a record whose enrichment entry is
// absent from the cache. This is a data-consistency violation between the
// dataset and the cache, not a soft miss, so the rebuild aborts on it.
func MissingEnrichment(kind, id string) *Error {
	return &Error{
		Code:    CodeMissingEnrichment,
		Message: fmt.Sprintf("no enrichment cached for %s %q", kind, id),
		Details: map[string]string{"kind": kind, "id": id},
	}
}

// Write creates a document write error.
func Write(msg string) *Error {
	return &Error{Code: CodeWrite, Message: msg}
}

// PointerStore creates a pointer store error.
func PointerStore(msg string) *Error {
	return &Error{Code: CodePointerStore, Message: msg}
}

// Reclaim creates a reclaim error. The only non-fatal code in the rebuild:
// an orphaned old index is a cleanup concern, not a correctness one.
func Reclaim(msg string) *Error {
	return &Error{Code: CodeReclaim, Message: msg}
}
