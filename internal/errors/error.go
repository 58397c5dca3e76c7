package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRegistration Category = "registration"
	CategoryResolution   Category = "resolution"
	CategoryLink         Category = "link"
	CategoryConfig       Category = "config"
	CategoryCLI          Category = "cli"
)

// Location points at the file a problem came from, typically a route
// source file or a manifest.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// WayfindError is a structured error with a stable code, suggestions,
// and documentation links.
type WayfindError struct {
	// Code is a unique error identifier (e.g., "W001").
	Code string

	// Category is the error type (registration, resolution, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file the error came from, if known.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WayfindError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WayfindError) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at a file. Line may be 0 when only the
// file is known.
func (e *WayfindError) WithLocation(file string, line int) *WayfindError {
	e.Location = &Location{File: file, Line: line}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WayfindError) WithSuggestion(s string) *WayfindError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WayfindError) WithDetail(d string) *WayfindError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WayfindError) Wrap(err error) *WayfindError {
	e.Wrapped = err
	return e
}

// New creates a WayfindError from a registered error code.
func New(code string) *WayfindError {
	template, ok := registry[code]
	if !ok {
		return &WayfindError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WayfindError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new WayfindError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WayfindError {
	return &WayfindError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WayfindError.
func FromError(err error, code string) *WayfindError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WayfindError); ok {
		return we
	}
	return New(code).Wrap(err)
}
