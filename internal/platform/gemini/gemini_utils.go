package gemini

import (
	"errors"
	"fmt"

	"github.com/phrazzld/braindump-api/internal/generation"
	"google.golang.org/genai"
)

// blockedFinishReasons are candidate finish reasons that mean the output was filtered.
var blockedFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:            true,
	genai.FinishReasonBlocklist:         true,
	genai.FinishReasonProhibitedContent: true,
	genai.FinishReasonSPII:              true,
}

// contentConfig builds the GenerateContent configuration for a request.
func contentConfig(req generation.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	if req.Schema.Definition != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseJsonSchema = req.Schema.Definition
	}

	return cfg
}

// responseText extracts the generated text from a response.
//
// Returns:
//   - The concatenated text of the first candidate
//   - generation.ErrContentBlocked if the prompt or output was filtered
//   - generation.ErrInvalidResponse if the response has no usable text
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if blockedFinishReasons[candidate.FinishReason] {
		return "", fmt.Errorf("%w: output blocked: %s",
			generation.ErrContentBlocked, candidate.FinishReason)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}

	return text, nil
}

// mapAPIError converts a client error into the generation error vocabulary.
func mapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.NewStatusError(apiErr.Code, apiErr.Message)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.NewStatusError(apiErrPtr.Code, apiErrPtr.Message)
	}

	return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
}
