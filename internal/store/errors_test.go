package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("delete task 42: %w", ErrTaskNotFound), expected: true},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("task", "delete", "no such id", ErrTaskNotFound),
			expected: true,
		},
		{name: "ErrInvalidEntity", err: ErrInvalidEntity, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	withCause := NewStoreError("task", "create", "validation failed", ErrInvalidEntity)
	assert.Equal(t, "create operation on task failed: validation failed: invalid entity", withCause.Error())
	assert.ErrorIs(t, withCause, ErrInvalidEntity)

	withoutCause := NewStoreError("task", "list", "unavailable", nil)
	assert.Equal(t, "list operation on task failed: unavailable", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())
}
