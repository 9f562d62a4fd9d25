// Package tasklist holds the task list the web UI works against. Tasks live
// in memory for the lifetime of the process.
package tasklist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/events"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/phrazzld/braindump-api/internal/store"
)

// ErrTaskNotFound is returned by Delete when no task has the given ID.
var ErrTaskNotFound = store.ErrTaskNotFound

// Store is an in-memory store.TaskStore. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	tasks      []store.ListedTask
	categories []string
	logger     *slog.Logger
	now        func() time.Time
}

var (
	_ store.TaskStore     = (*Store)(nil)
	_ events.EventHandler = (*Store)(nil)
)

// New creates an empty Store that accepts the given categories.
func New(categories []string, logger *slog.Logger) *Store {
	return &Store{
		tasks:      make([]store.ListedTask, 0),
		categories: slices.Clone(categories),
		logger:     logger.With("component", "tasklist"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Add validates and appends a single task.
func (s *Store) Add(title, category string, source store.TaskSource) (store.ListedTask, error) {
	task, err := domain.NewTask(title, category, s.categories)
	if err != nil {
		return store.ListedTask{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listed := s.newListedTask(task, source)
	s.tasks = append(s.tasks, listed)
	return listed, nil
}

// AddExtracted appends extraction results in order.
func (s *Store) AddExtracted(tasks []domain.Task) []store.ListedTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]store.ListedTask, 0, len(tasks))
	for _, task := range tasks {
		listed := s.newListedTask(task, store.SourceAI)
		s.tasks = append(s.tasks, listed)
		added = append(added, listed)
	}
	return added
}

// List returns a snapshot of the tasks in insertion order.
func (s *Store) List() []store.ListedTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Delete removes a task by ID.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.tasks, func(t store.ListedTask) bool { return t.ID == id })
	if i < 0 {
		return store.NewStoreError("task", "delete", "no task with id "+id.String(), ErrTaskNotFound)
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// HandleEvent appends the tasks carried by a events.TypeTasksExtracted event.
// Other event types are ignored.
func (s *Store) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeTasksExtracted {
		return nil
	}

	var payload events.TasksExtractedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
	}

	added := s.AddExtracted(payload.Tasks)

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "Saved extracted tasks",
		"event_id", event.ID,
		"task_count", len(added))
	return nil
}

// newListedTask copies the category so the list never aliases caller memory.
func (s *Store) newListedTask(task domain.Task, source store.TaskSource) store.ListedTask {
	var category *string
	if c := task.CategoryOrEmpty(); c != "" {
		category = &c
	}

	return store.ListedTask{
		ID:        uuid.New(),
		Title:     task.Title,
		Category:  category,
		Source:    source,
		CreatedAt: s.now(),
	}
}
