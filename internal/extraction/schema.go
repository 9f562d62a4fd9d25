package extraction

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/braindump-api/internal/generation"
)

// SchemaName is the name of the structured-output schema sent to providers.
const SchemaName = "extracted_tasks"

// TaskSchema returns the strict JSON schema every model response must match:
// an object with a required "tasks" array whose items require title,
// category (string or null) and categoryConfidence.
func TaskSchema() generation.Schema {
	return generation.Schema{
		Name:   SchemaName,
		Strict: true,
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"tasks": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"properties": map[string]any{
							"title":              map[string]any{"type": "string"},
							"category":           map[string]any{"type": []string{"string", "null"}},
							"categoryConfidence": map[string]any{"type": "number"},
						},
						"required": []string{"title", "category", "categoryConfidence"},
					},
				},
			},
			"required": []string{"tasks"},
		},
	}
}

// RawTask is a task as reported by the model, before normalization.
type RawTask struct {
	Title              string     `json:"title"`
	Category           *string    `json:"category"`
	CategoryConfidence Confidence `json:"categoryConfidence"`
}

// Confidence is a model-reported certainty in [0,1]. Values that are not JSON
// numbers decode as invalid rather than failing the whole payload.
type Confidence struct {
	Value float64
	Valid bool
}

// Confident returns a valid Confidence with the given value.
func Confident(value float64) Confidence {
	return Confidence{Value: value, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	*c = Confidence{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	*c = Confident(value)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Confidence) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// taskPayload is the top-level object of a model response.
type taskPayload struct {
	Tasks *[]RawTask `json:"tasks"`
}
