// Package llm selects the generation.Generator adapter for the configured provider.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/gemini"
	"github.com/phrazzld/braindump-api/internal/platform/openai"
)

// ErrNoCredentials is returned when the selected provider has no API key.
var ErrNoCredentials = errors.New("no API key configured for the selected provider")

// NewGenerator builds the adapter named by cfg.Provider.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Generator, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGeminiGenerator(ctx, logger, cfg)
	case config.ProviderOpenAI:
		return openai.NewGenerator(logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
