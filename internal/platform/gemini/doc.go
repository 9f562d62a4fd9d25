// Package gemini provides an implementation of the generation.Generator interface
// backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture. It
// translates a generation.Request into a GenerateContent call through the
// google.golang.org/genai client and translates the reply back into a
// generation.Response, without exposing SDK types to the extraction pipeline.
//
// Key behaviors:
//
// 1. Request mapping:
//   - The system instruction is sent as the model's SystemInstruction
//   - The user message is sent as a single user-role content
//   - A non-empty schema switches the response to application/json and
//     constrains it with ResponseJsonSchema
//
// 2. Response mapping:
//   - The first candidate's text parts are concatenated
//   - Prompt or candidate blocks by safety filters become generation.ErrContentBlocked
//   - Missing candidates or empty text become generation.ErrInvalidResponse
//
// 3. Error mapping:
//   - genai.APIError values become *generation.StatusError carrying the
//     upstream status code and message
//   - All other failures wrap generation.ErrGenerationFailed
//
// Calls are never retried here; a failed call fails the extraction.
package gemini
