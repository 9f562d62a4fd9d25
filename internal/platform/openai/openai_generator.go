package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/phrazzld/braindump-api/internal/redact"
)

// maxErrorMessageLength bounds how much of a non-JSON error body is kept.
const maxErrorMessageLength = 500

// Generator implements generation.Generator using the OpenAI Responses API.
type Generator struct {
	client *resty.Client
	logger *slog.Logger
	model  string
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Responses API generator.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration with the API key, base URL, model and timeout
//
// Returns:
//   - A configured Generator or an error wrapping generation.ErrInvalidConfig
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := strings.TrimRight(cfg.OpenAIBaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: openai base URL cannot be empty", generation.ErrInvalidConfig)
	}

	model := cfg.ModelName
	if model == "" {
		model = config.DefaultOpenAIModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.OpenAIAPIKey).
		SetRetryCount(0)

	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}

	return &Generator{
		client: client,
		logger: logger,
		model:  model,
	}, nil
}

// Generate sends one request to POST /responses and returns the output text.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	start := time.Now()

	var result responsesResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(g.buildRequest(req)).
		SetResult(&result).
		Post("/responses")
	if err != nil {
		log.ErrorContext(ctx, "OpenAI request failed",
			"model", g.model,
			"error", redact.Error(err))
		return nil, transformRequestError(err)
	}

	if !resp.IsSuccess() {
		statusErr := generation.NewStatusError(resp.StatusCode(), parseAPIError(resp))
		log.ErrorContext(ctx, "OpenAI API returned error status",
			"model", g.model,
			"status", resp.StatusCode(),
			"error", redact.Error(statusErr))
		return nil, statusErr
	}

	text := result.text()
	if text == "" {
		return nil, fmt.Errorf("%w: response %s contains no output text",
			generation.ErrInvalidResponse, result.ID)
	}

	log.DebugContext(ctx, "OpenAI API call successful",
		"model", g.model,
		"response_id", result.ID,
		"response_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())

	return &generation.Response{Text: text}, nil
}

func (g *Generator) buildRequest(req generation.Request) responsesRequest {
	input := make([]inputMessage, 0, 2)
	if req.SystemInstruction != "" {
		input = append(input, inputMessage{Role: "system", Content: req.SystemInstruction})
	}
	input = append(input, inputMessage{Role: "user", Content: req.UserMessage})

	body := responsesRequest{Model: g.model, Input: input}
	if req.Schema.Definition != nil {
		body.Text = &textOptions{Format: textFormat{
			Type:   "json_schema",
			Name:   req.Schema.Name,
			Schema: req.Schema.Definition,
			Strict: req.Schema.Strict,
		}}
	}
	return body
}

func transformRequestError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request aborted: %w", generation.ErrGenerationFailed, err)
	}
	return fmt.Errorf("%w: network error: %w", generation.ErrGenerationFailed, err)
}

// parseAPIError extracts the upstream error message, falling back to the raw
// body and then to the status text.
func parseAPIError(resp *resty.Response) string {
	body := resp.Body()

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Error.Message); msg != "" {
			return msg
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return truncateMessage(msg, maxErrorMessageLength)
	}

	return http.StatusText(resp.StatusCode())
}

// truncateMessage cuts msg to at most limit bytes without splitting a rune.
func truncateMessage(msg string, limit int) string {
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
