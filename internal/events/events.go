package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// EventType names a task lifecycle transition.
type EventType string

// Task lifecycle event types
const (
	TaskCreated   EventType = "task.created"
	TaskUpdated   EventType = "task.updated"
	TaskCompleted EventType = "task.completed"
	TaskReopened  EventType = "task.reopened"
	TaskDeleted   EventType = "task.deleted"
)

// TaskEvent records one mutation of the task collection.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates which transition happened
	Type EventType `json:"type"`

	// TaskID identifies the task the event is about
	TaskID uuid.UUID `json:"taskId"`

	// Payload is the task snapshot after the mutation, serialized as JSON.
	// It is empty for deletions.
	Payload json.RawMessage `json:"payload,omitempty"`

	// OccurredAt is the timestamp when the event was created
	OccurredAt time.Time `json:"occurredAt"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskEvent creates an event carrying a snapshot of task.
func NewTaskEvent(eventType EventType, task domain.Task) (*TaskEvent, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	return &TaskEvent{
		ID:         uuid.New(),
		Type:       eventType,
		TaskID:     task.ID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// NewTaskDeletedEvent creates a deletion event, which carries no snapshot.
func NewTaskDeletedEvent(taskID uuid.UUID) *TaskEvent {
	return &TaskEvent{
		ID:         uuid.New(),
		Type:       TaskDeleted,
		TaskID:     taskID,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
