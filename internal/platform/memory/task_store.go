package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// maxIDAttempts bounds retries when the generator returns a live ID.
const maxIDAttempts = 8

// TaskStore implements the store.TaskStore interface over a map guarded by a
// single RWMutex. Mutations hold the write lock for their whole duration, so
// readers observe either the state before or after a mutation, never a mix.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]entry
	// seq increases on every insert and is never reset; it orders tasks that
	// share a creation timestamp.
	seq uint64

	now    func() time.Time
	newID  func() uuid.UUID
	logger *slog.Logger
}

type entry struct {
	task domain.Task
	seq  uint64
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *TaskStore) {
		s.newID = newID
	}
}

// WithLogger sets the fallback logger used when a context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(s *TaskStore) {
		s.logger = l
	}
}

// Compile-time check that TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store. It is meant to be constructed once
// at process start and shared by every request handler.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  make(map[uuid.UUID]entry),
		now:    time.Now,
		newID:  uuid.New,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "memory_task_store"))
	return s
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, params domain.NewTaskParams) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.freshIDLocked()
	if err != nil {
		return domain.Task{}, err
	}

	task, err := domain.NewTask(id, params, s.now())
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return domain.Task{}, store.NewStoreError("task", "create", "invalid task", store.ErrInvalidEntity, err)
	}

	s.seq++
	s.tasks[id] = entry{task: task, seq: s.seq}

	log.Debug("task created",
		slog.String("task_id", id.String()),
		slog.Int("task_count", len(s.tasks)))

	return task.Clone(), nil
}

// Find implements store.TaskStore.Find
func (s *TaskStore) Find(_ context.Context, id uuid.UUID) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return e.task.Clone(), true
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false, nil
	}

	updated, err := patch.ApplyTo(e.task)
	if err != nil {
		log.Debug("rejected invalid patch",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return domain.Task{}, true, store.NewStoreError("task", "update", "invalid patch", store.ErrInvalidEntity, err)
	}

	e.task = updated
	s.tasks[id] = e

	log.Debug("task updated", slog.String("task_id", id.String()))

	return updated.Clone(), true, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted",
		slog.String("task_id", id.String()),
		slog.Int("task_count", len(s.tasks)))

	return true
}

// List implements store.TaskStore.List
func (s *TaskStore) List(_ context.Context) []domain.Task {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		entries = append(entries, entry{task: e.task.Clone(), seq: e.seq})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]domain.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.task
	}
	return tasks
}

// Len implements store.TaskStore.Len
func (s *TaskStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Reset removes every task. The insertion sequence keeps counting so
// ordering stays consistent across resets.
func (s *TaskStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[uuid.UUID]entry)
}

// freshIDLocked returns an identifier not held by any live task.
// The caller must hold the write lock.
func (s *TaskStore) freshIDLocked() (uuid.UUID, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id == uuid.Nil {
			continue
		}
		if _, taken := s.tasks[id]; !taken {
			return id, nil
		}
	}
	return uuid.Nil, store.NewStoreError("task", "create", "could not allocate a unique id", nil, nil)
}
