package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is the nil UUID.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task title is empty or whitespace only.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskCreatedAtZero is returned when a task has no creation timestamp.
	ErrTaskCreatedAtZero = errors.New("task creation time cannot be zero")

	// ErrInvalidDeadline is returned when a completeTill value cannot be parsed.
	ErrInvalidDeadline = errors.New("invalid deadline timestamp")
)

// Task is the single record tracked by the system.
type Task struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Done         bool       `json:"done"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompleteTill *time.Time `json:"completeTill"`
}

// NewTaskParams carries the caller-supplied fields of a new task.
type NewTaskParams struct {
	Title        string
	Description  *string
	CompleteTill *time.Time
}

// NewTask builds a validated Task. The identifier and creation time are
// supplied by the store; title and description are trimmed and an empty
// description is dropped.
func NewTask(id uuid.UUID, params NewTaskParams, createdAt time.Time) (Task, error) {
	task := Task{
		ID:          id,
		Title:       strings.TrimSpace(params.Title),
		Description: normalizeDescription(params.Description),
		Done:        false,
		CreatedAt:   createdAt.UTC(),
	}
	if params.CompleteTill != nil {
		deadline := params.CompleteTill.UTC()
		task.CompleteTill = &deadline
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks the invariants every stored task must hold.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrTaskIDEmpty)
	}

	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrTaskTitleEmpty)
	}

	if t.CreatedAt.IsZero() {
		return NewValidationError("createdAt", "cannot be zero", ErrTaskCreatedAtZero)
	}

	return nil
}

// Clone returns a deep copy so callers never share pointer fields with the store.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.CompleteTill != nil {
		ct := *t.CompleteTill
		c.CompleteTill = &ct
	}
	return c
}

// DescriptionText returns the description or "" when absent.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TaskPatch enumerates the mutable fields of a task. A nil field is left
// untouched. ID, CreatedAt and CompleteTill are intentionally absent.
type TaskPatch struct {
	Title       *string
	Description *string
	Done        *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Done == nil
}

// ApplyTo returns a copy of task with the patch applied. The original is
// never modified, so a failed patch leaves no partial state behind.
func (p TaskPatch) ApplyTo(task Task) (Task, error) {
	updated := task.Clone()

	if p.Title != nil {
		updated.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updated.Description = normalizeDescription(p.Description)
	}
	if p.Done != nil {
		updated.Done = *p.Done
	}

	if err := updated.Validate(); err != nil {
		return Task{}, err
	}

	return updated, nil
}

// ParseDeadline parses an RFC 3339 completeTill value. An empty string
// means no deadline and yields nil.
func ParseDeadline(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, NewValidationError("completeTill", "must be an RFC 3339 timestamp", ErrInvalidDeadline)
	}

	parsed = parsed.UTC()
	return &parsed, nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
