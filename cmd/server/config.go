package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/braindump-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logAppConfig logs the non-secret configuration details.
func logAppConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	logger.Debug("LLM configuration",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model(),
		"api_key_present", cfg.LLM.HasCredentials(),
		"request_timeout", cfg.LLM.RequestTimeout)

	logger.Debug("Extraction configuration",
		"max_chunk_length", cfg.Extraction.MaxChunkLength,
		"concurrency", cfg.Extraction.Concurrency,
		"skip_malformed_chunks", cfg.Extraction.SkipMalformedChunks,
		"categories", cfg.Extraction.Categories)
}
