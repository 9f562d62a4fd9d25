package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables
	v.SetEnvPrefix("BRAINDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFallbackEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Extraction.Categories = trimCategories(cfg.Extraction.Categories)
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.model_name", "")
	v.SetDefault("llm.openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.prompt_template_path", "")
	v.SetDefault("llm.request_timeout", 60*time.Second)

	v.SetDefault("extraction.max_chunk_length", 5000)
	v.SetDefault("extraction.concurrency", 1)
	v.SetDefault("extraction.skip_malformed_chunks", false)
	v.SetDefault("extraction.categories", DefaultCategories)
}

// bindFallbackEnv lets the conventional unprefixed variables configure the
// server when the prefixed ones are absent.
func bindFallbackEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":        {"BRAINDUMP_SERVER_PORT", "PORT"},
		"llm.openai_api_key": {"BRAINDUMP_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.gemini_api_key": {"BRAINDUMP_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"},
	}

	for key, envVars := range bindings {
		if err := v.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	return nil
}

func trimCategories(categories []string) []string {
	trimmed := make([]string, 0, len(categories))
	for _, category := range categories {
		trimmed = append(trimmed, strings.TrimSpace(category))
	}
	return trimmed
}
