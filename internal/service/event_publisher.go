package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Domain event types
const (
	EventDonationRecorded = "donation.recorded"
	EventRequestCreated   = "request.created"
	EventRequestDecided   = "request.decided"
	EventRequestCompleted = "request.completed"
)

const publishTimeout = 5 * time.Second

// Event is the envelope written to the event stream after a transaction commits
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

func NewEvent(eventType, key string, payload interface{}) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// EventPublisher publishes committed domain events. Publishing is best effort:
// the database is the source of truth and a failed publish never fails a request.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaEventPublisher struct {
	log    *logrus.Logger
	writer messageWriter
}

func NewKafkaEventPublisher(log *logrus.Logger, writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{
		log:    log,
		writer: writer,
	}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Warnf("Failed to encode event %s: %+v", event.Type, err)
		return
	}

	// detached from the request so a client disconnect does not drop the event
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnf("Failed to publish event %s: %+v", event.Type, err)
	}
}

func (p *kafkaEventPublisher) Close() error {
	return p.writer.Close()
}

type noopEventPublisher struct {
	log *logrus.Logger
}

// NewNoopEventPublisher is used when no broker is configured
func NewNoopEventPublisher(log *logrus.Logger) EventPublisher {
	return &noopEventPublisher{log: log}
}

func (p *noopEventPublisher) Publish(ctx context.Context, event Event) {
	p.log.Debugf("Event %s (%s) not published: no broker configured", event.Type, event.Key)
}

func (p *noopEventPublisher) Close() error {
	return nil
}
