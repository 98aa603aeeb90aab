package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedInput    = errors.New("malformed input")
	ErrDanglingReference = errors.New("dangling reference")
	ErrNotFound          = errors.New("not found")
	ErrExpired           = errors.New("expired")
	ErrStoreFailure      = errors.New("store failure")
	ErrValidation        = errors.New("validation error")
	ErrAlreadyExists     = errors.New("already exists")
)

// ErrorKind is the machine-readable classification of an error.
type ErrorKind string

const (
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindMalformedInput    ErrorKind = "malformed_input"
	KindDanglingReference ErrorKind = "dangling_reference"
	KindNotFound          ErrorKind = "not_found"
	KindExpired           ErrorKind = "expired"
	KindValidation        ErrorKind = "validation"
	KindAlreadyExists     ErrorKind = "already_exists"
	KindCanceled          ErrorKind = "canceled"
	KindStoreFailure      ErrorKind = "store_failure"
)

func (k ErrorKind) String() string { return string(k) }

// KindOf classifies err. Errors that match no sentinel are reported as
// store failures: they come from the persistence layer or below.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrDanglingReference):
		return KindDanglingReference
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrExpired):
		return KindExpired
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindStoreFailure
	}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DanglingReferenceError reports an imported record whose parent reference
// does not resolve to any record of the same document.
type DanglingReferenceError struct {
	Entity string // "group" or "item"
	Index  int
	Field  string
	Ref    string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%ss[%d].%s: %q does not match any imported record", e.Entity, e.Index, e.Field, e.Ref)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// MalformedInput wraps a human-readable reason with ErrMalformedInput.
func MalformedInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
