package manifest

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeManifestNotFound = "MANIFEST_NOT_FOUND"
	ErrCodeManifestParse    = "MANIFEST_PARSE"
	ErrCodeManifestInvalid  = "MANIFEST_INVALID"
	ErrCodePanelUnsupported = "PANEL_UNSUPPORTED"
)

// UserError represents an operator-facing error with an actionable suggestion.
type UserError struct {
	Code       string // Error code for categorization (e.g., "MANIFEST_PARSE")
	Message    string // Operator-facing error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for the error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}
	return b.String()
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code, message string) *UserError {
	return &UserError{Code: code, Message: message}
}

// WithContext returns a copy with location context set.
func (e *UserError) WithContext(context string) *UserError {
	clone := *e
	clone.Context = context
	return &clone
}

// WithSuggestion returns a copy with the suggestion set.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	clone := *e
	clone.Suggestion = suggestion
	return &clone
}

// WithUnderlying returns a copy wrapping the given error.
func (e *UserError) WithUnderlying(err error) *UserError {
	clone := *e
	clone.Underlying = err
	return &clone
}
