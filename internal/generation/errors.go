package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when a generation request fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate content")

	// ErrInvalidResponse is returned when the LLM response is empty or structurally unusable
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// StatusError is returned by adapters when the upstream service answers with a
// non-success status. It always unwraps to ErrGenerationFailed.
type StatusError struct {
	// StatusCode is the upstream HTTP status code
	StatusCode int

	// Message is the upstream error message
	Message string
}

// NewStatusError creates a StatusError.
func NewStatusError(statusCode int, message string) *StatusError {
	return &StatusError{StatusCode: statusCode, Message: message}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", ErrGenerationFailed, e.StatusCode, e.Message)
}

// Unwrap allows errors.Is(err, ErrGenerationFailed).
func (e *StatusError) Unwrap() error {
	return ErrGenerationFailed
}
