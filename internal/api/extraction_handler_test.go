package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/braindump-api/internal/api/shared"
	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/events"
	"github.com/phrazzld/braindump-api/internal/extraction"
	"github.com/phrazzld/braindump-api/internal/mocks"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/phrazzld/braindump-api/internal/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"Work", "Personal", "Errands"}

func strPtr(s string) *string { return &s }

// extractFunc adapts a function to TaskExtractor.
type extractFunc func(ctx context.Context, text string, categories []string) ([]domain.Task, error)

func (f extractFunc) Extract(ctx context.Context, text string, categories []string) ([]domain.Task, error) {
	return f(ctx, text, categories)
}

// failingEmitter rejects every event.
type failingEmitter struct{ err error }

func (f failingEmitter) EmitEvent(context.Context, *events.Event) error { return f.err }

func newExtractionRouter(h *ExtractionHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/categories", h.ListCategories)
	r.Post("/api/ai/extract-tasks", h.ExtractTasks)
	return r
}

func postExtract(t *testing.T, handler http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListCategories(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)
	h := NewExtractionHandler(nil, testCategories, nil, 0, log)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	newExtractionRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":["Work","Personal","Errands"]}`, w.Body.String())
}

func TestExtractTasks_Success(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)
	gen := mocks.NewMockGeneratorWithTasks(
		mocks.MockTask{Title: "Email Sam the report", Category: strPtr("Work"), CategoryConfidence: 0.93},
		mocks.MockTask{Title: "Buy stamps", Category: strPtr("Hobbies"), CategoryConfidence: 0.99},
	)
	extractor, err := extraction.New(gen, log)
	require.NoError(t, err)

	h := NewExtractionHandler(extractor, testCategories, nil, time.Minute, log)
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks",
		`{"brainDumpText":"email sam the report, buy stamps"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tasks":[
		{"title":"Email Sam the report","category":"Work"},
		{"title":"Buy stamps","category":null}
	]}`, w.Body.String())
	assert.Equal(t, 1, gen.CallCount())
}

func TestExtractTasks_PassesCategoriesAndText(t *testing.T) {
	t.Parallel()
	var gotText string
	var gotCategories []string
	fake := extractFunc(func(_ context.Context, text string, categories []string) ([]domain.Task, error) {
		gotText, gotCategories = text, categories
		return []domain.Task{}, nil
	})

	h := NewExtractionHandler(fake, testCategories, nil, 0, nil)
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks", `{"brainDumpText":"  call mom  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
	assert.Equal(t, "  call mom  ", gotText)
	assert.Equal(t, testCategories, gotCategories)
}

func TestExtractTasks_Unavailable(t *testing.T) {
	t.Parallel()
	h := NewExtractionHandler(nil, testCategories, nil, 0, nil)

	// The credential check precedes body parsing.
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks", `not json`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "AI extraction is unavailable because no model API key is configured.", decodeError(t, w).Error)
}

func TestExtractTasks_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "empty body", body: ``, status: http.StatusBadRequest, message: "brainDumpText is required."},
		{name: "missing field", body: `{}`, status: http.StatusBadRequest, message: "brainDumpText is required."},
		{name: "empty string", body: `{"brainDumpText":""}`, status: http.StatusBadRequest, message: "brainDumpText is required."},
		{name: "whitespace only", body: `{"brainDumpText":" \n\t "}`, status: http.StatusBadRequest, message: "brainDumpText is required."},
		{name: "wrong type", body: `{"brainDumpText":42}`, status: http.StatusBadRequest, message: "brainDumpText is required."},
		{name: "malformed json", body: `{"brainDumpText":`, status: http.StatusBadRequest, message: "Invalid request format"},
		{
			name:    "too large",
			body:    `{"brainDumpText":"` + strings.Repeat("x", shared.MaxRequestBodyBytes) + `"}`,
			status:  http.StatusRequestEntityTooLarge,
			message: "Request body too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := mocks.NewMockGeneratorWithTasks()
			extractor, err := extraction.New(gen, logger.FromContext(context.Background()))
			require.NoError(t, err)
			h := NewExtractionHandler(extractor, testCategories, nil, 0, nil)

			w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks", tc.body)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decodeError(t, w).Error)
			assert.Zero(t, gen.CallCount())
		})
	}
}

func TestExtractTasks_PipelineFailureIsNotLeaked(t *testing.T) {
	t.Parallel()
	log, logBuf := logger.GetTestLogger(t)
	gen := mocks.MockGeneratorThatFails(http.StatusUnauthorized, "Incorrect API key provided: sk-abcdefghijklmnopqrstuv")
	extractor, err := extraction.New(gen, log)
	require.NoError(t, err)

	h := NewExtractionHandler(extractor, testCategories, nil, 0, log)
	req := httptest.NewRequest(http.MethodPost, "/api/ai/extract-tasks", strings.NewReader(`{"brainDumpText":"plan trip"}`))
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()
	newExtractionRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Unable to convert brain dump into tasks.", decodeError(t, w).Error)
	assert.NotContains(t, w.Body.String(), "sk-")
	assert.NotContains(t, w.Body.String(), "401")

	logger.AssertLogContains(t, logBuf, "API error response")
	assert.NotContains(t, logBuf.String(), "sk-abcdefghijklmnopqrstuv")
}

func TestExtractTasks_MalformedModelOutput(t *testing.T) {
	t.Parallel()
	gen := mocks.NewMockGeneratorWithText("Sure! Here are your tasks")
	extractor, err := extraction.New(gen, logger.FromContext(context.Background()))
	require.NoError(t, err)

	h := NewExtractionHandler(extractor, testCategories, nil, 0, nil)
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks", `{"brainDumpText":"plan trip"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Unable to convert brain dump into tasks.", decodeError(t, w).Error)
}

func TestExtractTasks_AppliesTimeout(t *testing.T) {
	t.Parallel()
	var hadDeadline bool
	fake := extractFunc(func(ctx context.Context, _ string, _ []string) ([]domain.Task, error) {
		_, hadDeadline = ctx.Deadline()
		return nil, nil
	})

	h := NewExtractionHandler(fake, testCategories, nil, 5*time.Second, nil)
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks", `{"brainDumpText":"x"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hadDeadline)
}

func TestExtractTasks_SaveAppendsToTaskList(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)
	list := tasklist.New(testCategories, log)
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(list)

	gen := mocks.NewMockGeneratorWithTasks(
		mocks.MockTask{Title: "Pick up dry cleaning", Category: strPtr("Errands"), CategoryConfidence: 0.9},
	)
	extractor, err := extraction.New(gen, log)
	require.NoError(t, err)
	router := newExtractionRouter(NewExtractionHandler(extractor, testCategories, emitter, 0, log))

	w := postExtract(t, router, "/api/ai/extract-tasks", `{"brainDumpText":"dry cleaning"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, list.List(), "tasks are only saved on request")

	w = postExtract(t, router, "/api/ai/extract-tasks?save=true", `{"brainDumpText":"dry cleaning"}`)
	require.Equal(t, http.StatusOK, w.Code)

	saved := list.List()
	require.Len(t, saved, 1)
	assert.Equal(t, "Pick up dry cleaning", saved[0].Title)
	require.NotNil(t, saved[0].Category)
	assert.Equal(t, "Errands", *saved[0].Category)
	assert.EqualValues(t, "ai", saved[0].Source)
}

func TestExtractTasks_SaveFailure(t *testing.T) {
	t.Parallel()
	fake := extractFunc(func(context.Context, string, []string) ([]domain.Task, error) {
		return []domain.Task{{Title: "A"}}, nil
	})

	h := NewExtractionHandler(fake, testCategories, failingEmitter{err: errors.New("handler down")}, 0, nil)
	w := postExtract(t, newExtractionRouter(h), "/api/ai/extract-tasks?save=1", `{"brainDumpText":"a"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Unable to convert brain dump into tasks.", decodeError(t, w).Error)
}
