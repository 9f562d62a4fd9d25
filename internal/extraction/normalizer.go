package extraction

import (
	"slices"
	"strings"

	"github.com/phrazzld/braindump-api/internal/domain"
)

// CategoryConfidenceThreshold is the minimum confidence at which a model
// category is accepted.
const CategoryConfidenceThreshold = 0.8

// Normalize converts raw model tasks into domain tasks.
//
// Titles are whitespace-collapsed and empty titles dropped. A category is kept
// only when it is in categories and was reported with confidence of at least
// CategoryConfidenceThreshold; otherwise the task is kept uncategorized. Titles
// are deduplicated case-insensitively and the first occurrence wins.
func Normalize(raw []RawTask, categories []string) []domain.Task {
	tasks := make([]domain.Task, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, rawTask := range raw {
		title := domain.NormalizeTitle(rawTask.Title)
		if title == "" {
			continue
		}

		key := strings.ToLower(title)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}

		tasks = append(tasks, domain.Task{
			Title:    title,
			Category: acceptedCategory(rawTask, categories),
		})
	}

	return tasks
}

func acceptedCategory(rawTask RawTask, categories []string) *string {
	if rawTask.Category == nil || *rawTask.Category == "" {
		return nil
	}

	if !slices.Contains(categories, *rawTask.Category) {
		return nil
	}

	confidence := rawTask.CategoryConfidence
	if !confidence.Valid || confidence.Value < CategoryConfidenceThreshold {
		return nil
	}

	category := *rawTask.Category
	return &category
}

// uniqueCategories drops blank and repeated labels, keeping first occurrences.
func uniqueCategories(categories []string) []string {
	unique := make([]string, 0, len(categories))
	for _, category := range categories {
		if strings.TrimSpace(category) == "" || slices.Contains(unique, category) {
			continue
		}
		unique = append(unique, category)
	}
	return unique
}
