// Package generation provides the interface for interacting with external
// AI/LLM text-generation services. It abstracts the details of each provider
// (Gemini, OpenAI) so the extraction pipeline can request structured output
// without coupling to a specific external service.
//
// The Generator interface is the single capability the pipeline depends on:
// one structured-output request in, one text response out. Adapters live in
// internal/platform; tests substitute internal/mocks.MockGenerator.
package generation
