package config

import "time"

// Provider names accepted by LLMConfig.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default model names per provider, used when LLMConfig.ModelName is empty.
const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4.1-mini"
)

// DefaultCategories is the category set offered when none is configured.
var DefaultCategories = []string{"Work", "Personal", "Health", "Finance", "Learning", "Errands"}

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Extraction ExtractionConfig `mapstructure:"extraction" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
//
// API keys are optional at load time: without a key for the selected provider
// the server still starts and the extraction endpoint reports itself unavailable.
type LLMConfig struct {
	Provider           string        `mapstructure:"provider"             validate:"required,oneof=gemini openai"`
	GeminiAPIKey       string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey       string        `mapstructure:"openai_api_key"`
	ModelName          string        `mapstructure:"model_name"`
	OpenAIBaseURL      string        `mapstructure:"openai_base_url"      validate:"required,url"`
	PromptTemplatePath string        `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"      validate:"gt=0"`
}

// APIKey returns the key for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// HasCredentials reports whether the selected provider has an API key.
func (c LLMConfig) HasCredentials() bool {
	return c.APIKey() != ""
}

// Model returns the configured model name, or the provider default.
func (c LLMConfig) Model() string {
	if c.ModelName != "" {
		return c.ModelName
	}
	if c.Provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

// ExtractionConfig contains settings for the brain dump extraction pipeline.
type ExtractionConfig struct {
	MaxChunkLength      int      `mapstructure:"max_chunk_length"      validate:"gt=0"`
	Concurrency         int      `mapstructure:"concurrency"           validate:"gte=1,lte=16"`
	SkipMalformedChunks bool     `mapstructure:"skip_malformed_chunks"`
	Categories          []string `mapstructure:"categories"            validate:"required,min=1,unique,dive,required"`
}
