package query

import (
	"math"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// DueSoonWindow is how close a deadline must be to count as due soon.
const DueSoonWindow = 24 * time.Hour

// Stats summarizes completion across a set of tasks.
type Stats struct {
	Total                int `json:"total"`
	Active               int `json:"active"`
	Completed            int `json:"completed"`
	CompletionPercentage int `json:"completionPercentage"`
}

// Summarize counts tasks by completion state. The percentage is rounded to
// the nearest integer and is 0 for an empty set.
func Summarize(tasks []domain.Task) Stats {
	var stats Stats
	for _, task := range tasks {
		stats.Total++
		if task.Done {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed

	if stats.Total > 0 {
		stats.CompletionPercentage = int(math.Round(float64(stats.Completed) * 100 / float64(stats.Total)))
	}
	return stats
}

// DueStatus classifies a task against its deadline.
type DueStatus string

// Possible due status values
const (
	DueStatusNone     DueStatus = "none"
	DueStatusDone     DueStatus = "done"
	DueStatusUpcoming DueStatus = "upcoming"
	DueStatusDueSoon  DueStatus = "due_soon"
	DueStatusOverdue  DueStatus = "overdue"
)

// DueStatusOf reports where the task stands relative to its deadline at now.
// Completed tasks are always DueStatusDone.
func DueStatusOf(task domain.Task, now time.Time) DueStatus {
	switch {
	case task.Done:
		return DueStatusDone
	case task.CompleteTill == nil:
		return DueStatusNone
	case task.CompleteTill.Before(now):
		return DueStatusOverdue
	case task.CompleteTill.Sub(now) <= DueSoonWindow:
		return DueStatusDueSoon
	default:
		return DueStatusUpcoming
	}
}
