package generation

import (
	"context"
)

// Generator defines the interface for structured text generation.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate issues one generation request and returns the model's text.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - req: The instruction, user message and output schema
	//
	// Returns:
	//   - The response whose Text holds the JSON-serialized structured output
	//   - An error if the call fails (see errors.go for specific types)
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is a single structured-output generation request.
type Request struct {
	// SystemInstruction is the fixed instruction sent with the system role
	SystemInstruction string

	// UserMessage is the content sent with the user role
	UserMessage string

	// Schema constrains the shape of the response
	Schema Schema
}

// Schema is a named JSON schema the model output must satisfy.
type Schema struct {
	// Name identifies the schema to providers that require one
	Name string

	// Strict asks the provider to enforce the schema exactly
	Strict bool

	// Definition is the JSON schema document
	Definition map[string]any
}

// Response is the result of a generation request.
type Response struct {
	// Text is the concatenated text output of the model
	Text string
}
