// Package errors provides structured, machine-readable errors for the
// derivation engine. Every failure mode carries a stable code so callers
// (CLI, HTTP API) can map it to an exit status or response without string
// matching.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	// ErrCodeInvalidInput indicates malformed or out-of-range user intent.
	ErrCodeInvalidInput = "INVALID_INPUT"

	// ErrCodeUnknownLanguage indicates an unsupported language profile id.
	ErrCodeUnknownLanguage = "UNKNOWN_LANGUAGE"

	// ErrCodeInfeasibleSizing indicates derived resource values would exceed
	// the tier's safety ceiling. The input combination is unreasonable, not a bug.
	ErrCodeInfeasibleSizing = "INFEASIBLE_SIZING"

	// ErrCodeInfeasiblePolicy indicates the derived replica bounds would exceed
	// the hard replica ceiling.
	ErrCodeInfeasiblePolicy = "INFEASIBLE_POLICY"

	// ErrCodeBundleInconsistent indicates a cross-document consistency check
	// failed during assembly.
	ErrCodeBundleInconsistent = "BUNDLE_INCONSISTENT"

	// HTTP-layer codes.
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// StructuredError is an error with a stable code and optional detail fields.
type StructuredError struct {
	Code    string         `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	err error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *StructuredError) Unwrap() error {
	return e.err
}

// WithDetail attaches a detail key-value pair and returns the error for chaining.
func (e *StructuredError) WithDetail(key string, value any) *StructuredError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a StructuredError with the given code and formatted message.
func New(code, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a StructuredError wrapping an underlying error.
func Wrap(err error, code, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		err:     err,
	}
}

// CodeOf extracts the structured code from err, or ErrCodeInternal when err
// carries no code.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given structured code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
