package extraction

import (
	"errors"
	"fmt"

	"github.com/phrazzld/braindump-api/internal/generation"
)

// ErrMalformedResponse is returned when a model response is not valid JSON or
// lacks the "tasks" array.
var ErrMalformedResponse = errors.New("malformed model response")

// Error reports a failed extraction. It identifies the chunk that failed and,
// when the generation capability reported one, its status and message.
type Error struct {
	// Chunk is the zero-based index of the chunk that failed
	Chunk int

	// StatusCode is the upstream status, or 0 when none was reported
	StatusCode int

	// Message is the upstream message, or "" when none was reported
	Message string

	// Err is the underlying cause
	Err error
}

// newError wraps err for the given chunk, lifting status details from a
// generation.StatusError when present.
func newError(chunk int, err error) *Error {
	extractionErr := &Error{Chunk: chunk, Err: err}

	var statusErr *generation.StatusError
	if errors.As(err, &statusErr) {
		extractionErr.StatusCode = statusErr.StatusCode
		extractionErr.Message = statusErr.Message
	}

	return extractionErr
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed on chunk %d: %v", e.Chunk, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
