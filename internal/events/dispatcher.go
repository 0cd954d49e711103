package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the AsyncEmitter
var (
	ErrQueueClosed = errors.New("event queue is closed")
	ErrQueueFull   = errors.New("event queue is full")
)

// AsyncEmitterConfig holds configuration for the AsyncEmitter.
type AsyncEmitterConfig struct {
	// WorkerCount is the number of goroutines delivering events.
	// If zero or negative, defaults to 1.
	WorkerCount int

	// QueueSize is the buffer size of the event queue.
	// If zero or negative, defaults to 1.
	QueueSize int
}

// DefaultAsyncEmitterConfig returns an AsyncEmitterConfig with reasonable defaults
func DefaultAsyncEmitterConfig() AsyncEmitterConfig {
	return AsyncEmitterConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

type queuedEvent struct {
	ctx   context.Context
	event *TaskEvent
}

// AsyncEmitter decouples event producers from slow handlers. EmitEvent only
// enqueues; a pool of workers forwards each event to the wrapped emitter.
// Events are dropped, with ErrQueueFull, rather than blocking the caller.
type AsyncEmitter struct {
	next        EventEmitter
	queue       chan queuedEvent
	workerCount int
	logger      *slog.Logger

	// mu guards closed; EmitEvent holds it for reading while sending so Stop
	// can never close the channel under a sender.
	mu     sync.RWMutex
	closed bool

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewAsyncEmitter creates an AsyncEmitter that delivers to next.
// Call Start before emitting and Stop on shutdown.
func NewAsyncEmitter(next EventEmitter, config AsyncEmitterConfig, logger *slog.Logger) *AsyncEmitter {
	if next == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("next emitter cannot be nil for AsyncEmitter")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "async_event_emitter")

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}

	return &AsyncEmitter{
		next:        next,
		queue:       make(chan queuedEvent, queueSize),
		workerCount: workerCount,
		logger:      logger,
	}
}

// Start launches the worker goroutines. Calling it more than once is a no-op.
func (a *AsyncEmitter) Start() {
	a.startOnce.Do(func() {
		for i := 0; i < a.workerCount; i++ {
			a.wg.Add(1)
			go a.worker(i)
		}
		a.logger.Info("event workers started", "worker_count", a.workerCount)
	})
}

// EmitEvent enqueues the event for asynchronous delivery.
// The context's values are kept for the handlers but its cancellation is
// not, since delivery usually outlives the request that caused it.
func (a *AsyncEmitter) EmitEvent(ctx context.Context, event *TaskEvent) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrQueueClosed
	}

	select {
	case a.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		a.logger.Debug("event enqueued",
			"event_id", event.ID,
			"event_type", event.Type,
			"queue_len", len(a.queue),
			"queue_cap", cap(a.queue))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(a.queue))
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (a *AsyncEmitter) Stop() {
	a.stopOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()

		a.wg.Wait()
		a.logger.Info("event workers stopped")
	})
}

func (a *AsyncEmitter) worker(id int) {
	defer a.wg.Done()

	for item := range a.queue {
		if err := a.next.EmitEvent(item.ctx, item.event); err != nil {
			a.logger.Error("event delivery failed",
				"worker_id", id,
				"event_id", item.event.ID,
				"event_type", item.event.Type,
				"error", err)
		}
	}
}
