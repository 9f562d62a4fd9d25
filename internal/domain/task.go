package domain

import (
	"slices"
	"strings"
	"unicode"
)

// Task is an actionable item extracted from a brain dump.
//
// Category is nil when the task is uncategorized. It is non-nil only when the
// label belongs to the category set of the extraction that produced it.
type Task struct {
	Title    string  `json:"title"`
	Category *string `json:"category"`
}

// NewTask creates a Task, normalizing the title and validating the category
// against the allowed set. An empty category means uncategorized.
func NewTask(title, category string, categories []string) (Task, error) {
	title = NormalizeTitle(title)
	if title == "" {
		return Task{}, NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	task := Task{Title: title}
	if category == "" {
		return task, nil
	}

	if !slices.Contains(categories, category) {
		return Task{}, NewValidationError("category", "is not one of the configured categories", ErrUnknownCategory)
	}

	task.Category = &category
	return task, nil
}

// CategoryOrEmpty returns the task category, or "" when uncategorized.
func (t Task) CategoryOrEmpty() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}

// NormalizeTitle collapses whitespace runs to single spaces and trims the result.
// A byte order mark counts as whitespace.
func NormalizeTitle(title string) string {
	return strings.Join(strings.FieldsFunc(title, isTitleSpace), " ")
}

func isTitleSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
