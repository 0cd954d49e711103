package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/platform/logger"
)

// LogHandler writes every task event to the structured log at info level.
// It is the default sink when no broker is configured.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. A nil logger uses the slog default.
func NewLogHandler(l *slog.Logger) *LogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LogHandler{logger: l.With("component", "task_event_log")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)
	log.Info("task event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("task_id", event.TaskID.String()),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}
