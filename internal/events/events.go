package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/braindump-api/internal/domain"
)

// TypeTasksExtracted is emitted when an extraction result should be kept in the task list.
const TypeTasksExtracted = "tasks.extracted"

// Event is a notification published through an EventEmitter.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type identifies the kind of event and the shape of its payload
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// TasksExtractedPayload is the payload of a TypeTasksExtracted event.
type TasksExtractedPayload struct {
	Tasks []domain.Task `json:"tasks"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewTasksExtractedEvent wraps extraction results in a TypeTasksExtracted event.
func NewTasksExtractedEvent(tasks []domain.Task) (*Event, error) {
	return NewEvent(TypeTasksExtracted, TasksExtractedPayload{Tasks: tasks})
}

// EventHandler defines an interface for components that can handle events.
// Handlers ignore event types they do not recognize.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
