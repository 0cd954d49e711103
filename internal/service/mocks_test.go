package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, params domain.NewTaskParams) (domain.Task, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) Find(ctx context.Context, id uuid.UUID) (domain.Task, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Bool(1)
}

func (m *MockTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (domain.Task, bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Bool(1), args.Error(2)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockTaskStore) List(ctx context.Context) []domain.Task {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Task)
}

func (m *MockTaskStore) Len(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// recordingEmitter captures emitted events and can be told to fail.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
