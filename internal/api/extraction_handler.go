package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/braindump-api/internal/api/shared"
	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/events"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
)

// User-facing messages of the extraction endpoint.
const (
	msgExtractionUnavailable = "AI extraction is unavailable because no model API key is configured."
	msgBrainDumpRequired     = "brainDumpText is required."
	msgExtractionFailed      = "Unable to convert brain dump into tasks."
	msgInvalidRequest        = "Invalid request format"
	msgRequestTooLarge       = "Request body too large"
)

// TaskExtractor converts a brain dump into tasks. *extraction.Extractor
// implements it.
type TaskExtractor interface {
	Extract(ctx context.Context, brainDumpText string, categories []string) ([]domain.Task, error)
}

// ExtractionHandler serves the category list and the brain dump extraction endpoint.
type ExtractionHandler struct {
	extractor  TaskExtractor
	categories []string
	emitter    events.EventEmitter
	timeout    time.Duration
	logger     *slog.Logger
}

// NewExtractionHandler creates an ExtractionHandler.
//
// A nil extractor means no model credentials are configured; the extraction
// endpoint then answers 503. A nil emitter disables ?save=true. A
// non-positive timeout leaves the request context unbounded.
func NewExtractionHandler(
	extractor TaskExtractor,
	categories []string,
	emitter events.EventEmitter,
	timeout time.Duration,
	logger *slog.Logger,
) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{
		extractor:  extractor,
		categories: slices.Clone(categories),
		emitter:    emitter,
		timeout:    timeout,
		logger:     logger.With("component", "extraction_handler"),
	}
}

// ListCategories handles GET /api/categories.
func (h *ExtractionHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CategoriesResponse{Categories: h.categories})
}

// ExtractTasks handles POST /api/ai/extract-tasks.
func (h *ExtractionHandler) ExtractTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if h.extractor == nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, msgExtractionUnavailable, nil)
		return
	}

	var req ExtractTasksRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.respondDecodeError(w, r, err)
		return
	}

	if strings.TrimSpace(req.BrainDumpText) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgBrainDumpRequired)
		return
	}

	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	tasks, err := h.extractor.Extract(ctx, req.BrainDumpText, h.categories)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgExtractionFailed, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	if save && h.emitter != nil {
		if err := h.saveTasks(r.Context(), tasks); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgExtractionFailed, err)
			return
		}
	}

	log.InfoContext(r.Context(), "brain dump converted",
		slog.Int("task_count", len(tasks)),
		slog.Bool("saved", save && h.emitter != nil))

	shared.RespondWithJSON(w, r, http.StatusOK, ExtractTasksResponse{Tasks: tasks})
}

func (h *ExtractionHandler) saveTasks(ctx context.Context, tasks []domain.Task) error {
	event, err := events.NewTasksExtractedEvent(tasks)
	if err != nil {
		return err
	}
	return h.emitter.EmitEvent(ctx, event)
}

// respondDecodeError distinguishes oversized bodies from plain syntax errors.
// An empty body or a wrongly typed brainDumpText counts as a missing field.
func (h *ExtractionHandler) respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxBytesErr):
		shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, msgRequestTooLarge, err,
			shared.WithElevatedLogLevel())
	case errors.Is(err, io.EOF),
		errors.As(err, &typeErr) && typeErr.Field == "brainDumpText":
		shared.RespondWithError(w, r, http.StatusBadRequest, msgBrainDumpRequired)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
	}
}
