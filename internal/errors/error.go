package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryHost      Category = "host"
	CategoryScheduler Category = "scheduler"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
	CategoryExport    Category = "export"
)

// WeaveError is a structured error with a code, a suggestion and documentation.
type WeaveError struct {
	// Code is a unique error identifier (e.g., "W001").
	Code string

	// Category is the error type (runtime, host, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WeaveError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WeaveError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WeaveError) WithSuggestion(s string) *WeaveError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *WeaveError) WithExample(ex string) *WeaveError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WeaveError) WithDetail(d string) *WeaveError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WeaveError) Wrap(err error) *WeaveError {
	e.Wrapped = err
	return e
}

// New creates a WeaveError from a registered error code.
func New(code string) *WeaveError {
	template, ok := registry[code]
	if !ok {
		return &WeaveError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WeaveError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new WeaveError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WeaveError {
	return &WeaveError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WeaveError.
func FromError(err error, code string) *WeaveError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WeaveError); ok {
		return we
	}
	return New(code).Wrap(err)
}

// Is reports whether any error in err's chain is a WeaveError with the given code.
func Is(err error, code string) bool {
	for err != nil {
		var we *WeaveError
		if !stderrors.As(err, &we) {
			return false
		}
		if we.Code == code {
			return true
		}
		err = we.Wrapped
	}
	return false
}
