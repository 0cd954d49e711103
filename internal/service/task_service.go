package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/query"
	"github.com/phrazzld/taskboard/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns the tasks matching filter and search.
	ListTasks(ctx context.Context, filter domain.Filter, search string) ([]domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// CreateTask validates and stores a new task
	CreateTask(ctx context.Context, params domain.NewTaskParams) (domain.Task, error)

	// SetDone marks a task completed or active
	SetDone(ctx context.Context, id uuid.UUID, done bool) (domain.Task, error)

	// UpdateTask applies a partial update
	UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (domain.Task, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// Stats summarizes the whole collection
	Stats(ctx context.Context) (query.Stats, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:   taskStore,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter domain.Filter,
	search string,
) ([]domain.Task, error) {
	if !filter.Valid() {
		return nil, domain.NewValidationError("filter",
			"must be one of all, active, completed", domain.ErrInvalidFilter)
	}

	tasks := query.Tasks(s.store.List(ctx), filter, search)

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed tasks",
		slog.String("filter", string(filter)),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	task, ok := s.store.Find(ctx, id)
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
			slog.String("task_id", id.String()))
		return domain.Task{}, ErrTaskNotFound
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	params domain.NewTaskParams,
) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.store.Create(ctx, params)
	if err != nil {
		log.Debug("task rejected", slog.String("error", err.Error()))
		return domain.Task{}, err
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	s.emit(ctx, events.TaskCreated, task)
	return task, nil
}

// SetDone implements TaskService.SetDone
func (s *taskServiceImpl) SetDone(ctx context.Context, id uuid.UUID, done bool) (domain.Task, error) {
	task, err := s.update(ctx, "set_done", id, domain.TaskPatch{Done: &done})
	if err != nil {
		return domain.Task{}, err
	}

	s.emit(ctx, completionEvent(done), task)
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// A patch that only touches done is reported as a completion or reopening;
// anything else is a generic update.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (domain.Task, error) {
	task, err := s.update(ctx, "update_task", id, patch)
	if err != nil {
		return domain.Task{}, err
	}

	eventType := events.TaskUpdated
	if patch.Title == nil && patch.Description == nil && patch.Done != nil {
		eventType = completionEvent(*patch.Done)
	}
	s.emit(ctx, eventType, task)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.store.Delete(ctx, id) {
		log.Debug("task not found", slog.String("task_id", id.String()))
		return ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	s.publish(ctx, events.NewTaskDeletedEvent(id))
	return nil
}

// Stats implements TaskService.Stats
func (s *taskServiceImpl) Stats(ctx context.Context) (query.Stats, error) {
	return query.Summarize(s.store.List(ctx)), nil
}

func (s *taskServiceImpl) update(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	patch domain.TaskPatch,
) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, found, err := s.store.Update(ctx, id, patch)
	if !found {
		log.Debug("task not found",
			slog.String("operation", operation),
			slog.String("task_id", id.String()))
		return domain.Task{}, ErrTaskNotFound
	}
	if err != nil {
		log.Debug("task update rejected",
			slog.String("operation", operation),
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return domain.Task{}, err
	}

	log.Info("task updated",
		slog.String("operation", operation),
		slog.String("task_id", id.String()),
		slog.Bool("done", task.Done))
	return task, nil
}

func completionEvent(done bool) events.EventType {
	if done {
		return events.TaskCompleted
	}
	return events.TaskReopened
}

// emit builds an event from the task snapshot and publishes it.
func (s *taskServiceImpl) emit(ctx context.Context, eventType events.EventType, task domain.Task) {
	event, err := events.NewTaskEvent(eventType, task)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to build task event",
			slog.String("event_type", string(eventType)),
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	s.publish(ctx, event)
}

// publish never fails the caller: the mutation has already happened.
func (s *taskServiceImpl) publish(ctx context.Context, event *events.TaskEvent) {
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			slog.String("event_type", string(event.Type)),
			slog.String("task_id", event.TaskID.String()),
			slog.String("error", err.Error()))
	}
}
