package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type stubWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestKafkaEventPublisherWritesEnvelope(t *testing.T) {
	writer := &stubWriter{}
	publisher := &kafkaEventPublisher{log: quietLogger(), writer: writer}

	publisher.Publish(context.Background(), NewEvent(EventDonationRecorded, "donation-1", map[string]int{"quantity": 450}))

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != "donation-1" {
		t.Fatalf("expected key donation-1, got %s", msg.Key)
	}

	var decoded struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
	}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if decoded.Type != EventDonationRecorded {
		t.Fatalf("expected type %s, got %s", EventDonationRecorded, decoded.Type)
	}
	if decoded.Payload["quantity"] != 450 {
		t.Fatalf("expected quantity 450, got %d", decoded.Payload["quantity"])
	}
}

func TestKafkaEventPublisherSwallowsWriteErrors(t *testing.T) {
	writer := &stubWriter{err: errors.New("broker down")}
	publisher := &kafkaEventPublisher{log: quietLogger(), writer: writer}

	publisher.Publish(context.Background(), NewEvent(EventRequestCreated, "request-1", nil))

	if err := publisher.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !writer.closed {
		t.Fatal("expected writer to be closed")
	}
}
