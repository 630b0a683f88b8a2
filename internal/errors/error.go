package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryRuntime  Category = "runtime"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// AnimateError is a structured error with a code, suggestion, and documentation.
type AnimateError struct {
	// Code is a unique error identifier (e.g., "A001").
	Code string

	// Category is the error type (config, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field names the offending configuration field, if any.
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AnimateError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AnimateError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *AnimateError with the same code.
// Uncoded errors only match themselves.
func (e *AnimateError) Is(target error) bool {
	t, ok := target.(*AnimateError)
	if !ok {
		return false
	}
	if e.Code == "" || t.Code == "" {
		return e == t
	}
	return e.Code == t.Code
}

// WithField records the configuration field that caused the error.
func (e *AnimateError) WithField(field string) *AnimateError {
	e.Field = field
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *AnimateError) WithSuggestion(s string) *AnimateError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *AnimateError) WithDetail(d string) *AnimateError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *AnimateError) Wrap(err error) *AnimateError {
	e.Wrapped = err
	return e
}

// New creates an AnimateError from a registered error code.
func New(code string) *AnimateError {
	template, ok := GetTemplate(code)
	if !ok {
		return &AnimateError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &AnimateError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new AnimateError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *AnimateError {
	return &AnimateError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an AnimateError.
// An error that already is an *AnimateError is returned unchanged.
func FromError(err error, code string) *AnimateError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AnimateError); ok {
		return ae
	}
	return New(code).Wrap(err)
}
