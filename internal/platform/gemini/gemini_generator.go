package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/phrazzld/braindump-api/internal/redact"
	"google.golang.org/genai"
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key, model name and request timeout
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	return newGeminiGenerator(ctx, logger, cfg, genai.HTTPOptions{})
}

// newGeminiGenerator allows the HTTP options, such as the base URL, to be overridden.
func newGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	httpOptions genai.HTTPOptions,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.RequestTimeout > 0 && httpOptions.Timeout == nil {
		timeout := cfg.RequestTimeout
		httpOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	model := cfg.ModelName
	if model == "" {
		model = config.DefaultGeminiModel
	}

	logger.InfoContext(ctx, "Initialized Gemini generator", "model", model)

	return &GeminiGenerator{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

// Generate sends one request to the Gemini API and returns the model's text.
//
// Parameters:
//   - ctx: Context for the call, used for cancellation and request-scoped logging
//   - req: System instruction, user message and optional response schema
//
// Returns:
//   - The generated text
//   - A *generation.StatusError when the API rejected the call, or an error
//     wrapping one of the generation sentinel errors otherwise
func (g *GeminiGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return nil, ErrEmptyUserMessage
	}

	log := logger.FromContextOrDefault(ctx, g.logger)
	start := time.Now()

	log.DebugContext(ctx, "Making Gemini API call",
		"model", g.model,
		"user_message_length", len(req.UserMessage),
		"schema", req.Schema.Name)

	contents := []*genai.Content{genai.NewContentFromText(req.UserMessage, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, contentConfig(req))
	if err != nil {
		mapped := mapAPIError(err)
		log.ErrorContext(ctx, "Gemini API call failed",
			"model", g.model,
			"error", redact.Error(mapped),
			"duration_ms", time.Since(start).Milliseconds())
		return nil, mapped
	}

	text, err := responseText(resp)
	if err != nil {
		log.WarnContext(ctx, "Gemini API returned unusable response",
			"model", g.model,
			"error", err)
		return nil, err
	}

	log.DebugContext(ctx, "Gemini API call successful",
		"model", g.model,
		"response_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())

	return &generation.Response{Text: text}, nil
}
