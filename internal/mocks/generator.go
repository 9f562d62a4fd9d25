package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phrazzld/braindump-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (*generation.Response, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []generation.Request
	}
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return &generation.Response{Text: m.Text}, nil
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// Requests returns a copy of the requests received so far.
func (m *MockGenerator) Requests() []generation.Request {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return append([]generation.Request(nil), m.GenerateCalls.Requests...)
}

// NewMockGeneratorWithText creates a MockGenerator that returns text for every call
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockTask is a task as the model would report it, used to build canned payloads.
type MockTask struct {
	Title              string  `json:"title"`
	Category           *string `json:"category"`
	CategoryConfidence float64 `json:"categoryConfidence"`
}

// TasksPayload serializes tasks into the extracted_tasks response shape.
func TasksPayload(tasks ...MockTask) string {
	if tasks == nil {
		tasks = []MockTask{}
	}
	data, err := json.Marshal(map[string][]MockTask{"tasks": tasks})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// NewMockGeneratorWithTasks creates a MockGenerator that returns the given
// tasks as a well-formed payload for every call
func NewMockGeneratorWithTasks(tasks ...MockTask) *MockGenerator {
	return NewMockGeneratorWithText(TasksPayload(tasks...))
}

// MockGeneratorThatFails creates a MockGenerator that simulates an upstream failure
func MockGeneratorThatFails(statusCode int, message string) *MockGenerator {
	return NewMockGeneratorWithError(generation.NewStatusError(statusCode, message))
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
}
