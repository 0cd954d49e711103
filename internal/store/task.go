package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore defines the interface for the authoritative task collection.
//
// An unknown identifier is never an error: Find and Update report it with a
// false flag and Delete with a false return. Only validation can fail.
// Every returned task is a copy owned by the caller.
type TaskStore interface {
	// Create validates the params, assigns a fresh identifier and creation
	// time, and inserts the task. Returns an error matching
	// domain.ErrValidation and ErrInvalidEntity when the title is blank;
	// nothing is inserted in that case.
	Create(ctx context.Context, params domain.NewTaskParams) (domain.Task, error)

	// Find looks up a task by ID.
	Find(ctx context.Context, id uuid.UUID) (domain.Task, bool)

	// Update applies the patch atomically. The flag is false when the ID is
	// unknown. An invalid patch returns an error and leaves the task untouched.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (domain.Task, bool, error)

	// Delete removes the task and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) bool

	// List returns a snapshot ordered newest-created first.
	List(ctx context.Context) []domain.Task

	// Len returns the number of live tasks.
	Len(ctx context.Context) int
}
