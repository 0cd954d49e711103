package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
	now         func() time.Time
}

// TaskHandlerOption configures a TaskHandler.
type TaskHandlerOption func(*TaskHandler)

// WithNow overrides the clock used to derive due status.
func WithNow(now func() time.Time) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.now = now
	}
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	taskService service.TaskService,
	logger *slog.Logger,
	opts ...TaskHandlerOption,
) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	h := &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListTasks handles GET /api/tasks requests.
// Query parameters: filter (all|active|completed, default active) and search.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter, err := domain.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		log.Debug("invalid filter", slog.String("filter", r.URL.Query().Get("filter")))
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter, r.URL.Query().Get("search"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, tasksToResponse(tasks, h.now()))
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		if errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	var deadline string
	if req.CompleteTill != nil {
		deadline = *req.CompleteTill
	}
	completeTill, err := domain.ParseDeadline(deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), domain.NewTaskParams{
		Title:        req.Title,
		Description:  req.Description,
		CompleteTill: completeTill,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, taskToResponse(task, h.now()))
}

// GetStats handles GET /api/tasks/stats requests.
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, stats)
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task, h.now()))
}

// UpdateTask handles PATCH /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSONStrict(r, &req); err != nil {
		log.Debug("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := req.toPatch()
	if patch.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields to update")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task, h.now()))
}

// SetDone handles PUT /api/tasks/{id}/done requests.
func (h *TaskHandler) SetDone(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SetDoneRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.SetDone(r.Context(), id, *req.Done)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task, h.now()))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondOK(w, r)
}

// PerformAction handles the legacy POST /api/tasks/{id} endpoint.
// {"done": bool} sets completion, {"delete": true} removes the task.
// An unknown ID is reported before the body is looked at, and an unreadable
// body counts as no action.
func (h *TaskHandler) PerformAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := h.taskService.GetTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	var req ActionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("unreadable action body", slog.String("error", redact.Error(err)))
		req = ActionRequest{}
	}

	switch {
	case req.Done != nil:
		task, err := h.taskService.SetDone(r.Context(), id, *req.Done)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to update task")
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task, h.now()))

	case req.Delete != nil && *req.Delete:
		if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
			HandleAPIError(w, r, err, "Failed to delete task")
			return
		}
		shared.RespondOK(w, r)

	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "No valid action")
	}
}
