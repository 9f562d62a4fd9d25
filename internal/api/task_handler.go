package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/braindump-api/internal/api/shared"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/phrazzld/braindump-api/internal/store"
)

// TaskHandler serves the task list.
type TaskHandler struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler backed by the given store.
func NewTaskHandler(tasks store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: h.tasks.List()})
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.tasks.Add(req.Title, req.Category, store.SourceManual)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).DebugContext(r.Context(), "task added",
		slog.String("task_id", task.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid task ID")
		return
	}

	if err := h.tasks.Delete(id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
