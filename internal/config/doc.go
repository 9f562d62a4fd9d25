// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the BRAINDUMP_ prefix with dots replaced by
// underscores (BRAINDUMP_LLM_PROVIDER, BRAINDUMP_EXTRACTION_CATEGORIES).
// PORT, OPENAI_API_KEY and GEMINI_API_KEY are honored as fallbacks.
package config
