package step

import (
	"fmt"
	"strings"
)

// Error codes for step machinery.
const (
	ErrCodeProviderFailed = "PROVIDER_FAILED"
	ErrCodeStepDuplicate  = "STEP_DUPLICATE"
	ErrCodeCheckFailed    = "CHECK_FAILED"
	ErrCodeApplyFailed    = "APPLY_FAILED"
)

// StepError represents a step machinery error with enough context to act on.
type StepError struct {
	Code       string // Error code for categorization
	Message    string // Human-readable error message
	Provider   string // Provider that caused the error
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion
	Underlying error  // Wrapped error for the error chain
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider %q", e.Provider))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step %q", e.StepID))
	}
	if len(parts) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Provider != "" {
		fmt.Fprintf(&b, "\n  Provider: %s", e.Provider)
	}
	if e.StepID != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.StepID)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}
	return b.String()
}

// NewStepError creates a new StepError with the given code and message.
func NewStepError(code, message string) *StepError {
	return &StepError{Code: code, Message: message}
}

// WithProvider returns a copy with the provider set.
func (e *StepError) WithProvider(provider string) *StepError {
	clone := *e
	clone.Provider = provider
	return &clone
}

// WithStepID returns a copy with the step ID set.
func (e *StepError) WithStepID(id string) *StepError {
	clone := *e
	clone.StepID = id
	return &clone
}

// WithSuggestion returns a copy with the suggestion set.
func (e *StepError) WithSuggestion(suggestion string) *StepError {
	clone := *e
	clone.Suggestion = suggestion
	return &clone
}

// WithUnderlying returns a copy wrapping the given error.
func (e *StepError) WithUnderlying(err error) *StepError {
	clone := *e
	clone.Underlying = err
	return &clone
}
