package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher relies on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards task events to a Kafka topic. Messages are keyed by
// task ID so every event for one task lands on the same partition.
type Publisher struct {
	writer MessageWriter
	logger *slog.Logger
}

// NewWriter builds a kafka-go writer for the configured brokers and topic.
func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
}

// NewPublisher creates a Publisher around writer.
func NewPublisher(writer MessageWriter, l *slog.Logger) *Publisher {
	if writer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("writer cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &Publisher{
		writer: writer,
		logger: l.With("component", "kafka_publisher"),
	}
}

// HandleEvent implements events.EventHandler.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.TaskID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error("failed to write kafka message",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", string(event.Type)),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	log.Debug("event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)))
	return nil
}

// Close flushes pending writes and releases the broker connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ events.EventHandler = (*Publisher)(nil)
