// Package redact removes sensitive information from strings before they are
// logged. Model provider errors can echo request URLs, client configuration or
// user-supplied text, so every upstream error passes through Error before it
// reaches a log line.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; key patterns come before generic path matching so a
// redacted key is never split by a path replacement.
var rules = []rule{
	// Authorization headers and bearer tokens
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`), "Bearer " + RedactedKeyPlaceholder},

	// Provider key formats
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{16,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{30,}`), RedactedKeyPlaceholder},

	// key=... query parameters
	{regexp.MustCompile(`(?i)([?&]key=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},

	// Named secrets in config dumps and messages, e.g. APIKey:"...", api_key=...
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password)(["']?\s*[:=]\s*["']?)[^"'\s,}&]{4,}`),
		"${1}${2}" + RedactedKeyPlaceholder,
	},

	// JWT-style tokens
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// File paths, but not URL paths
	{regexp.MustCompile(`(^|[\s"'(=])(/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
