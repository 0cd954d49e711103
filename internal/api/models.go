package api

import (
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/query"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title        string  `json:"title"        validate:"required"`
	Description  *string `json:"description"`
	CompleteTill *string `json:"completeTill"`
}

// UpdateTaskRequest defines the payload for PATCH /api/tasks/{id}.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// SetDoneRequest defines the payload for PUT /api/tasks/{id}/done.
type SetDoneRequest struct {
	Done *bool `json:"done" validate:"required"`
}

// ActionRequest is the body of the legacy POST /api/tasks/{id} endpoint.
// Done wins when both fields are present.
type ActionRequest struct {
	Done   *bool `json:"done"`
	Delete *bool `json:"delete"`
}

// TaskResponse is a task as returned to clients, with its derived due status.
type TaskResponse struct {
	domain.Task
	DueStatus query.DueStatus `json:"dueStatus"`
}

func (req UpdateTaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	}
}

func taskToResponse(task domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		Task:      task,
		DueStatus: query.DueStatusOf(task, now),
	}
}

func tasksToResponse(tasks []domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task, now))
	}
	return out
}
