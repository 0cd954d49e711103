package query

import (
	"testing"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Stats{}, Summarize(nil))

	tasks := []domain.Task{
		task("a", true, 1),
		task("b", false, 2),
		task("c", false, 3),
	}
	assert.Equal(t, Stats{Total: 3, Active: 2, Completed: 1, CompletionPercentage: 33}, Summarize(tasks))

	tasks = append(tasks, task("d", true, 4))
	assert.Equal(t, 50, Summarize(tasks).CompletionPercentage)

	tasks = []domain.Task{task("a", true, 1), task("b", true, 2), task("c", false, 3)}
	assert.Equal(t, 67, Summarize(tasks).CompletionPercentage)
}

func TestDueStatusOf(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name     string
		done     bool
		deadline *time.Time
		want     DueStatus
	}{
		{"no deadline", false, nil, DueStatusNone},
		{"done overdue", true, at(-time.Hour), DueStatusDone},
		{"done no deadline", true, nil, DueStatusDone},
		{"overdue", false, at(-time.Minute), DueStatusOverdue},
		{"due soon", false, at(3 * time.Hour), DueStatusDueSoon},
		{"due exactly in window", false, at(DueSoonWindow), DueStatusDueSoon},
		{"upcoming", false, at(48 * time.Hour), DueStatusUpcoming},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := domain.Task{Title: "x", Done: tc.done, CompleteTill: tc.deadline}
			assert.Equal(t, tc.want, DueStatusOf(tk, now))
		})
	}
}
