package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyUserMessage is returned when a request carries no user message.
	ErrEmptyUserMessage = errors.New("user message cannot be empty")
)
