package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/braindump-api/internal/domain"
)

// TaskSource records how a task entered the list.
type TaskSource string

const (
	// SourceManual marks tasks typed in by the user.
	SourceManual TaskSource = "manual"

	// SourceAI marks tasks produced by brain dump extraction.
	SourceAI TaskSource = "ai"
)

// ListedTask is a task held in the task list.
type ListedTask struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Category  *string    `json:"category"`
	Source    TaskSource `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskStore defines the interface for task list operations.
type TaskStore interface {
	// Add validates and appends a single task.
	// Returns domain.ErrEmptyTitle or domain.ErrUnknownCategory (wrapped in
	// ErrInvalidEntity) if the task is rejected.
	Add(title, category string, source TaskSource) (ListedTask, error)

	// AddExtracted appends extraction results in order. The tasks are assumed
	// to be normalized already.
	AddExtracted(tasks []domain.Task) []ListedTask

	// List returns a snapshot of the tasks in insertion order.
	List() []ListedTask

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if no task has that ID.
	Delete(id uuid.UUID) error
}
