package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/braindump-api/internal/api"
	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/events"
	"github.com/phrazzld/braindump-api/internal/extraction"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/llm"
	"github.com/phrazzld/braindump-api/internal/store"
	"github.com/phrazzld/braindump-api/internal/tasklist"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// extractor is nil when the selected provider has no API key
	extractor *extraction.Extractor

	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	return newApplicationWithGenerator(ctx, cfg, logger, nil)
}

// newApplicationWithGenerator lets tests supply the generator. A nil
// generator selects the configured provider.
func newApplicationWithGenerator(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if generator == nil {
		var err error
		generator, err = llm.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
		switch {
		case errors.Is(err, llm.ErrNoCredentials):
			logger.Warn("No API key configured for the LLM provider; AI extraction is disabled",
				"provider", cfg.LLM.Provider)
		case err != nil:
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		default:
			logger.Info("LLM generator initialized successfully",
				"provider", cfg.LLM.Provider,
				"model", cfg.LLM.Model())
		}
	}

	if generator != nil {
		extractor, err := extraction.NewFromConfig(generator, logger.With("component", "extractor"), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create extractor: %w", err)
		}
		app.extractor = extractor
	}

	taskList := tasklist.New(cfg.Extraction.Categories, logger)
	app.taskStore = taskList

	// Saved extraction results reach the task list through the event emitter.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(taskList)
	app.eventEmitter = emitter

	logger.Info("Application initialized successfully")
	return app, nil
}

// taskExtractor returns the extractor as an api.TaskExtractor, or nil when
// extraction is disabled.
func (app *application) taskExtractor() api.TaskExtractor {
	if app.extractor == nil {
		return nil
	}
	return app.extractor
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
