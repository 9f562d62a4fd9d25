package api

import (
	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/store"
)

// ExtractTasksRequest is the payload for POST /api/ai/extract-tasks.
type ExtractTasksRequest struct {
	BrainDumpText string `json:"brainDumpText"`
}

// ExtractTasksResponse is the successful response of the extraction endpoint.
type ExtractTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// CategoriesResponse lists the configured categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// CreateTaskRequest is the payload for POST /api/tasks.
// An empty Category creates an uncategorized task.
type CreateTaskRequest struct {
	Title    string `json:"title"    validate:"required,max=500"`
	Category string `json:"category"`
}

// TaskListResponse is the response of GET /api/tasks.
type TaskListResponse struct {
	Tasks []store.ListedTask `json:"tasks"`
}
