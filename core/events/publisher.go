package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types.
const (
	TypeShipmentCreated   = "shipment.created"
	TypeShipmentUpdated   = "shipment.updated"
	TypeShipmentCancelled = "shipment.cancelled"
	TypeShipmentsSynced   = "shipments.synced"
)

// Event is the envelope written to the topic.
type Event struct {
	// ID lets consumers drop redeliveries.
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// New returns a kafka publisher, or a no-op publisher when no broker is configured.
func New(cfg Config, logger *zap.Logger) Publisher {
	if !cfg.Enabled() {
		return NopPublisher{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisher(w, cfg.WriteTimeoutSeconds, logger)
}

// KafkaPublisher writes events as JSON messages keyed by Event.Key.
type KafkaPublisher struct {
	writer  Writer
	timeout time.Duration
	logger  *zap.Logger
}

// NewKafkaPublisher wraps w.
func NewKafkaPublisher(w Writer, timeoutSeconds int, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: w, timeout: timeout, logger: logger}
}

// Publish writes event. An empty ID and a zero OccurredAt are filled in.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:     []byte(event.Key),
		Value:   b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
			{Key: "id", Value: []byte(event.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	p.logger.Debug("Event published", zap.String("type", event.Type), zap.String("key", event.Key))
	return nil
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

func (NopPublisher) Close() error { return nil }
