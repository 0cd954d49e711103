package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/kafka"
	"github.com/phrazzld/taskboard/internal/platform/memory"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/seed"
	"github.com/phrazzld/taskboard/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   *memory.TaskStore
	taskService service.TaskService

	// Event system
	eventEmitter events.EventEmitter
	dispatcher   *events.AsyncEmitter
	publisher    *kafka.Publisher
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.taskStore = memory.NewTaskStore(memory.WithLogger(logger))

	if cfg.Store.SeedFile != "" {
		n, err := seed.LoadFile(ctx, cfg.Store.SeedFile, app.taskStore)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed data: %w", err)
		}
		logger.Info("Seed data loaded", "task_count", n)
	}

	handlers := events.NewInMemoryEventEmitter(logger)
	handlers.RegisterHandler(events.NewLogHandler(logger))

	if cfg.Events.Kafka.Enabled() {
		app.publisher = kafka.NewPublisher(kafka.NewWriter(cfg.Events.Kafka), logger)
		handlers.RegisterHandler(app.publisher)
		logger.Info("Kafka event publisher enabled",
			"broker_count", len(cfg.Events.Kafka.Brokers),
			"topic", cfg.Events.Kafka.Topic)
	}

	app.dispatcher = events.NewAsyncEmitter(handlers, events.AsyncEmitterConfig{
		WorkerCount: cfg.Events.WorkerCount,
		QueueSize:   cfg.Events.QueueSize,
	}, logger)
	app.dispatcher.Start()
	app.eventEmitter = app.dispatcher

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
// Pending events are delivered before the publisher is closed.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.logger.Info("Stopping event dispatcher")
		app.dispatcher.Stop()
	}

	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("Failed to close Kafka publisher", "error", redact.Error(err))
		}
	}
}
