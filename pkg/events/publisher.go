package events

import (
	"cinebook/pkg/logger"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher emits booking lifecycle events to Kafka, keyed by user id so all
// events of one aggregate land on the same partition in order. A nil
// Publisher is valid and publishes nothing, which is how services run when
// no brokers are configured.
type Publisher struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewPublisher returns nil when brokers is empty.
func NewPublisher(brokers []string, topic, source string, log *logger.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { log.Error("Kafka writer error", "detail", msg) }),
	}

	log.Info("Booking event publisher enabled", "brokers", brokers, "topic", topic)
	return &Publisher{
		writer: writer,
		source: source,
		log:    log,
	}
}

// Publish is best-effort: failures are logged and swallowed so an event bus
// outage never fails the request that produced the event.
func (p *Publisher) Publish(ctx context.Context, eventType string, event BookingEvent) {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode booking event", "event_type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.NewString())},
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderSource, Value: []byte(p.source)},
			{Key: HeaderTimestamp, Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"userid", event.UserID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published", "event_type", eventType, "userid", event.UserID)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
