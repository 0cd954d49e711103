// Package query derives read-only views over a snapshot of tasks.
// Nothing here mutates its input or holds state between calls.
package query

import (
	"sort"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
)

// Tasks returns the tasks that satisfy both the filter and the search term.
//
// The search is a case-insensitive substring match against the title or the
// description; a blank term matches everything. With FilterAll the result is
// sorted newest-created first (stable, so equal timestamps keep input order);
// other filters keep the input order.
func Tasks(tasks []domain.Task, filter domain.Filter, search string) []domain.Task {
	term := strings.ToLower(strings.TrimSpace(search))

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Matches(task) && matchesSearch(task, term) {
			result = append(result, task.Clone())
		}
	}

	if filter == domain.FilterAll {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

// matchesSearch expects term already lower-cased and trimmed.
func matchesSearch(task domain.Task, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Title), term) ||
		strings.Contains(strings.ToLower(task.DescriptionText()), term)
}
