package extraction_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"text/template"
	"time"

	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/extraction"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/mocks"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newExtractor(t *testing.T, gen generation.Generator, opts ...extraction.Option) *extraction.Extractor {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	e, err := extraction.New(gen, log, opts...)
	require.NoError(t, err)
	return e
}

var chunkIndexPattern = regexp.MustCompile(`chunk-(\d+)`)

// chunkIndex recovers the chunk number embedded in a test dump line.
func chunkIndex(t *testing.T, req generation.Request) int {
	t.Helper()
	match := chunkIndexPattern.FindStringSubmatch(req.UserMessage)
	require.NotNil(t, match, "user message has no chunk marker: %q", req.UserMessage)
	index, err := strconv.Atoi(match[1])
	require.NoError(t, err)
	return index
}

// numberedDump builds n lines that each become their own chunk at maxLength 60.
func numberedDump(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("chunk-%d ", i)
		b.WriteString(line)
		b.WriteString(strings.Repeat("y", 48-len(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func TestNew(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	_, err := extraction.New(nil, log)
	assert.Error(t, err)

	_, err = extraction.New(mocks.NewMockGeneratorWithText(""), nil)
	assert.Error(t, err)
}

func TestExtract_BlankInput(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		gen := mocks.NewMockGeneratorWithTasks(mocks.MockTask{Title: "should not appear"})
		e := newExtractor(t, gen)

		tasks, err := e.Extract(context.Background(), text, []string{"Work"})

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
		assert.Equal(t, 0, gen.CallCount(), "generator must not be called for %q", text)
	}
}

func TestExtract_DedupesAndAppliesThreshold(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockGeneratorWithTasks(
		mocks.MockTask{Title: "Prepare STOEX pitch deck", Category: strPtr("Work"), CategoryConfidence: 0.95},
		mocks.MockTask{Title: "Prepare STOEX pitch deck", Category: strPtr("Work"), CategoryConfidence: 0.95},
		mocks.MockTask{Title: "Call Ramesh about gold pricing", Category: strPtr("Finance"), CategoryConfidence: 0.65},
	)
	e := newExtractor(t, gen)

	tasks, err := e.Extract(context.Background(), "messy dump", []string{"Work", "Finance"})

	require.NoError(t, err)
	assert.Equal(t, []domain.Task{
		{Title: "Prepare STOEX pitch deck", Category: strPtr("Work")},
		{Title: "Call Ramesh about gold pricing", Category: nil},
	}, tasks)
}

func TestExtract_RequestShape(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockGeneratorWithTasks()
	e := newExtractor(t, gen)

	_, err := e.Extract(context.Background(), "call the plumber", []string{"Work", "Work", "", "Errands"})
	require.NoError(t, err)

	requests := gen.Requests()
	require.Len(t, requests, 1)
	req := requests[0]

	assert.Equal(t, extraction.SystemInstruction, req.SystemInstruction)
	assert.Equal(t,
		"Predefined categories: Work, Errands.\n\nBrain dump:\ncall the plumber\n\nReturn tasks in JSON format only.",
		req.UserMessage)
	assert.Equal(t, "extracted_tasks", req.Schema.Name)
	assert.True(t, req.Schema.Strict)
	assert.Equal(t, false, req.Schema.Definition["additionalProperties"])
	assert.Equal(t, []string{"tasks"}, req.Schema.Definition["required"])
}

func TestExtract_CaseInsensitiveDedupeAcrossChunks(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockGenerator{
		GenerateFn: func(ctx context.Context, req generation.Request) (*generation.Response, error) {
			if strings.Contains(req.UserMessage, "first") {
				return &generation.Response{Text: mocks.TasksPayload(
					mocks.MockTask{Title: "Buy milk", Category: nil, CategoryConfidence: 0},
				)}, nil
			}
			return &generation.Response{Text: mocks.TasksPayload(
				mocks.MockTask{Title: "buy milk", Category: strPtr("Errands"), CategoryConfidence: 0.99},
				mocks.MockTask{Title: "Walk the dog", Category: strPtr("Personal"), CategoryConfidence: 0.9},
			)}, nil
		},
	}
	e := newExtractor(t, gen, extraction.WithMaxChunkLength(70))

	text := strings.Repeat("first ", 10) + "\n" + strings.Repeat("second ", 10)
	tasks, err := e.Extract(context.Background(), text, []string{"Errands", "Personal"})

	require.NoError(t, err)
	assert.Equal(t, 2, gen.CallCount())
	assert.Equal(t, []domain.Task{
		{Title: "Buy milk", Category: nil},
		{Title: "Walk the dog", Category: strPtr("Personal")},
	}, tasks)
}

func TestExtract_ConcurrentPreservesChunkOrder(t *testing.T) {
	t.Parallel()

	const chunkCount = 8
	const concurrency = 3

	var inFlight, maxInFlight atomic.Int32
	gen := &mocks.MockGenerator{
		GenerateFn: func(ctx context.Context, req generation.Request) (*generation.Response, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}

			index := chunkIndex(t, req)
			// Later chunks finish first.
			time.Sleep(time.Duration(chunkCount-index) * 3 * time.Millisecond)

			shared := "Shared task"
			if index > 0 {
				shared = strings.ToUpper(shared)
			}
			return &generation.Response{Text: mocks.TasksPayload(
				mocks.MockTask{Title: shared, Category: strPtr("Work"), CategoryConfidence: float64(index) / 10},
				mocks.MockTask{Title: fmt.Sprintf("Task %d", index)},
			)}, nil
		},
	}
	e := newExtractor(t, gen,
		extraction.WithMaxChunkLength(60),
		extraction.WithConcurrency(concurrency))

	tasks, err := e.Extract(context.Background(), numberedDump(chunkCount), []string{"Work"})

	require.NoError(t, err)
	assert.Equal(t, chunkCount, gen.CallCount())
	assert.LessOrEqual(t, maxInFlight.Load(), int32(concurrency))

	require.Len(t, tasks, chunkCount+1)
	assert.Equal(t, domain.Task{Title: "Shared task", Category: nil}, tasks[0])
	for i := 0; i < chunkCount; i++ {
		assert.Equal(t, fmt.Sprintf("Task %d", i), tasks[i+1].Title)
	}
}

func TestExtract_GeneratorFailure(t *testing.T) {
	t.Parallel()

	gen := mocks.MockGeneratorThatFails(401, "invalid api key")
	e := newExtractor(t, gen)

	tasks, err := e.Extract(context.Background(), "some dump", []string{"Work"})

	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.True(t, errors.Is(err, generation.ErrGenerationFailed))

	var extractionErr *extraction.Error
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, 0, extractionErr.Chunk)
	assert.Equal(t, 401, extractionErr.StatusCode)
	assert.Equal(t, "invalid api key", extractionErr.Message)
}

func TestExtract_FailsFastOnLaterChunk(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockGenerator{
		GenerateFn: func(ctx context.Context, req generation.Request) (*generation.Response, error) {
			if chunkIndex(t, req) == 1 {
				return nil, errors.New("connection reset")
			}
			return &generation.Response{Text: mocks.TasksPayload(mocks.MockTask{Title: "ok"})}, nil
		},
	}
	e := newExtractor(t, gen, extraction.WithMaxChunkLength(60))

	tasks, err := e.Extract(context.Background(), numberedDump(3), nil)

	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.Equal(t, 2, gen.CallCount(), "sequential extraction stops at the failing chunk")

	var extractionErr *extraction.Error
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, 1, extractionErr.Chunk)
	assert.Equal(t, 0, extractionErr.StatusCode)
}

func TestExtract_MalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "not_json", text: "Sure! Here are your tasks: ..."},
		{name: "missing_tasks", text: `{"items": []}`},
		{name: "null_payload", text: `null`},
		{name: "wrong_shape", text: `{"tasks": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newExtractor(t, mocks.NewMockGeneratorWithText(tt.text))

			tasks, err := e.Extract(context.Background(), "dump", []string{"Work"})

			require.Error(t, err)
			assert.Nil(t, tasks)
			assert.ErrorIs(t, err, extraction.ErrMalformedResponse)
		})
	}
}

func TestExtract_SkipMalformedChunks(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockGenerator{
		GenerateFn: func(ctx context.Context, req generation.Request) (*generation.Response, error) {
			index := chunkIndex(t, req)
			if index == 1 {
				return &generation.Response{Text: "not json"}, nil
			}
			return &generation.Response{Text: mocks.TasksPayload(mocks.MockTask{Title: fmt.Sprintf("Task %d", index)})}, nil
		},
	}
	log, logBuf := logger.GetTestLogger(t)
	e, err := extraction.New(gen, log,
		extraction.WithMaxChunkLength(60),
		extraction.WithSkipMalformedChunks(true))
	require.NoError(t, err)

	tasks, err := e.Extract(context.Background(), numberedDump(3), nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.Task{{Title: "Task 0"}, {Title: "Task 2"}}, tasks)
	logger.AssertLogContains(t, logBuf, "Skipping chunk with malformed model response")
}

func TestExtract_SkipMalformedStillFailsOnGeneratorError(t *testing.T) {
	t.Parallel()

	e := newExtractor(t, mocks.MockGeneratorThatFails(503, "overloaded"),
		extraction.WithSkipMalformedChunks(true))

	_, err := e.Extract(context.Background(), "dump", nil)

	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}

func TestExtract_UsesContextLogger(t *testing.T) {
	t.Parallel()

	ctxLogger, logBuf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), ctxLogger)
	e := newExtractor(t, mocks.NewMockGeneratorWithTasks(mocks.MockTask{Title: "One"}))

	_, err := e.Extract(ctx, "dump", nil)

	require.NoError(t, err)
	logger.AssertLogContains(t, logBuf, "Brain dump extraction completed")
}

func TestExtract_CustomPromptTemplate(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("custom").Parse(`{{range .Categories}}[{{.}}]{{end}} {{.Chunk}}`))
	gen := mocks.NewMockGeneratorWithTasks()
	e := newExtractor(t, gen, extraction.WithPromptTemplate(tmpl))

	_, err := e.Extract(context.Background(), "dump", []string{"Work", "Health"})

	require.NoError(t, err)
	assert.Equal(t, "[Work][Health] dump", gen.Requests()[0].UserMessage)
}

func TestLoadPromptTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`Use: {{join .Categories "|"}}
{{.Chunk}}`), 0o600))

	tmpl, err := extraction.LoadPromptTemplate(path)
	require.NoError(t, err)

	gen := mocks.NewMockGeneratorWithTasks()
	e := newExtractor(t, gen, extraction.WithPromptTemplate(tmpl))
	_, err = e.Extract(context.Background(), "dump", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, "Use: A|B\ndump", gen.Requests()[0].UserMessage)

	_, err = extraction.LoadPromptTemplate(filepath.Join(dir, "missing.tmpl"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(badPath, []byte(`{{.Chunk`), 0o600))
	_, err = extraction.LoadPromptTemplate(badPath)
	assert.Error(t, err)
}
