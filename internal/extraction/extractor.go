package extraction

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
)

// Extractor runs the brain-dump-to-task pipeline against an injected
// generation.Generator. It holds no per-call state and is safe for
// concurrent use.
type Extractor struct {
	generator      generation.Generator
	logger         *slog.Logger
	prompt         *template.Template
	maxChunkLength int
	concurrency    int
	skipMalformed  bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxChunkLength sets the chunk size in bytes. Non-positive values keep the default.
func WithMaxChunkLength(maxLength int) Option {
	return func(e *Extractor) {
		if maxLength > 0 {
			e.maxChunkLength = maxLength
		}
	}
}

// WithConcurrency sets how many chunk requests may be in flight at once.
// Values below 1 keep sequential processing.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithPromptTemplate replaces the user prompt template. A nil template keeps the default.
func WithPromptTemplate(tmpl *template.Template) Option {
	return func(e *Extractor) {
		if tmpl != nil {
			e.prompt = tmpl
		}
	}
}

// WithSkipMalformedChunks makes a malformed chunk response contribute zero
// tasks instead of failing the extraction.
func WithSkipMalformedChunks(skip bool) Option {
	return func(e *Extractor) {
		e.skipMalformed = skip
	}
}

// New creates an Extractor.
//
// Parameters:
//   - generator: The text-generation capability used for every chunk
//   - logger: Structured logger, used when the request context carries none
//   - opts: Optional settings
//
// Returns:
//   - A configured Extractor or an error if a dependency is missing
func New(generator generation.Generator, logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	e := &Extractor{
		generator:      generator,
		logger:         logger,
		prompt:         DefaultPromptTemplate(),
		maxChunkLength: DefaultMaxChunkLength,
		concurrency:    1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Extract converts a brain dump into tasks.
//
// Blank text yields an empty result without calling the generator. Otherwise
// the text is chunked, each chunk is sent to the generator, and the combined
// output is normalized against categories. Any generator failure or malformed
// response fails the whole call with an *Error; no partial result is returned.
func (e *Extractor) Extract(ctx context.Context, brainDumpText string, categories []string) ([]domain.Task, error) {
	if strings.TrimSpace(brainDumpText) == "" {
		return []domain.Task{}, nil
	}

	log := logger.FromContextOrDefault(ctx, e.logger)
	start := time.Now()

	categories = uniqueCategories(categories)
	chunks := SplitIntoChunks(brainDumpText, e.maxChunkLength)

	log.InfoContext(ctx, "Starting brain dump extraction",
		"text_length", len(brainDumpText),
		"chunk_count", len(chunks),
		"category_count", len(categories))

	raw, err := e.invokeAll(ctx, log, chunks, categories)
	if err != nil {
		return nil, err
	}

	tasks := Normalize(raw, categories)

	log.InfoContext(ctx, "Brain dump extraction completed",
		"chunk_count", len(chunks),
		"raw_task_count", len(raw),
		"task_count", len(tasks),
		"duration_ms", time.Since(start).Milliseconds())

	return tasks, nil
}
