package nodedetails

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error type constants for classification and matching
const (
	// ErrorTypeAll acts as a wildcard that matches any error
	ErrorTypeAll = "all"

	// ErrorTypeNotFound indicates the requested node or plugin does not exist
	ErrorTypeNotFound = "not_found"

	// ErrorTypeInvalid indicates malformed collaborator data, e.g. a feed
	// document that cannot be parsed
	ErrorTypeInvalid = "invalid"

	// ErrorTypeTimeout matches a timeout or context canceled error
	ErrorTypeTimeout = "timeout"

	// ErrorTypeFetchFailed is the default classification for errors returned
	// by a collaborator. These are considered recoverable.
	ErrorTypeFetchFailed = "fetch_failed"
)

// DetailError is a classified error returned by sources and the loader.
// The derivations themselves never return errors.
type DetailError struct {
	Type    string `json:"type"`
	Cause   string `json:"cause"`
	Wrapped error  `json:"-"`
}

// Error implements the error interface
func (e *DetailError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Cause)
}

// Unwrap returns the original error, if any
func (e *DetailError) Unwrap() error {
	return e.Wrapped
}

// NewDetailError creates a new DetailError with the given type and cause.
func NewDetailError(errorType, cause string) *DetailError {
	return &DetailError{Type: errorType, Cause: cause}
}

// NotFoundf returns an ErrorTypeNotFound error with a formatted cause.
func NotFoundf(format string, args ...any) *DetailError {
	return NewDetailError(ErrorTypeNotFound, fmt.Sprintf(format, args...))
}

// WrapError wraps err with the given type, keeping it reachable from
// errors.Is and errors.As.
func WrapError(errorType string, err error) *DetailError {
	return &DetailError{Type: errorType, Cause: err.Error(), Wrapped: err}
}

// ClassifyError attempts to classify a regular error into a DetailError
func ClassifyError(err error) *DetailError {
	var detailErr *DetailError
	if errors.As(err, &detailErr) {
		return detailErr
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return WrapError(ErrorTypeTimeout, err)
	}
	return WrapError(ErrorTypeFetchFailed, err)
}

// MatchesErrorType checks if an error matches a specified error type pattern
func MatchesErrorType(err error, errorType string) bool {
	if err == nil {
		return false
	}
	if errorType == ErrorTypeAll {
		return true
	}
	return ClassifyError(err).Type == errorType
}

// RecoverableError may be implemented by source errors to override the
// default classification.
type RecoverableError interface {
	error
	IsRecoverable() bool
}

// IsRecoverable reports whether fetching again may succeed. Cancellation,
// missing data and malformed data are never recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	var recoverable RecoverableError
	if errors.As(err, &recoverable) {
		return recoverable.IsRecoverable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch ClassifyError(err).Type {
	case ErrorTypeNotFound, ErrorTypeInvalid:
		return false
	default:
		return true
	}
}
