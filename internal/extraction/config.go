package extraction

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/generation"
)

// NewFromConfig creates an Extractor using the extraction settings and the
// optional prompt template file from cfg.
func NewFromConfig(generator generation.Generator, logger *slog.Logger, cfg *config.Config) (*Extractor, error) {
	opts := []Option{
		WithMaxChunkLength(cfg.Extraction.MaxChunkLength),
		WithConcurrency(cfg.Extraction.Concurrency),
		WithSkipMalformedChunks(cfg.Extraction.SkipMalformedChunks),
	}

	if cfg.LLM.PromptTemplatePath != "" {
		tmpl, err := LoadPromptTemplate(cfg.LLM.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
		}
		opts = append(opts, WithPromptTemplate(tmpl))
	}

	return New(generator, logger, opts...)
}
