package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type mockWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("TT-AB12C").
		WithValue(map[string]string{"code": "TT-AB12C"}).
		WithEventType("booking.created").
		WithCorrelationID("req-1").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return msg
}

func TestProducer_Publish(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, "tabletime.booking-events")

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.written) != 1 {
		t.Fatalf("wrote %d messages, want 1", len(w.written))
	}

	got := w.written[0]
	if string(got.Key) != "TT-AB12C" {
		t.Errorf("key = %q", got.Key)
	}
	headers := map[string]string{}
	for _, h := range got.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers[HeaderEventType] != "booking.created" {
		t.Errorf("event type header = %q", headers[HeaderEventType])
	}
	if headers[HeaderEventID] == "" {
		t.Error("event id header missing")
	}

	echoed := Message{Value: got.Value}
	var body map[string]string
	if err := echoed.DecodeValue(&body); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if body["code"] != "TT-AB12C" {
		t.Errorf("value code = %q", body["code"])
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, "topic")

	if err := p.Publish(context.Background(), Message{Value: []byte("{}")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key error = %v, want ErrEmptyKey", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value error = %v, want ErrEmptyValue", err)
	}
}

func TestProducer_WrapsWriterError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	p := NewProducerWithWriter(&mockWriter{err: writeErr}, "topic")

	err := p.Publish(context.Background(), buildMessage(t))
	if !errors.Is(err, writeErr) {
		t.Errorf("Publish() error = %v, want wrapped %v", err, writeErr)
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, "topic")

	var calls []string
	for _, name := range []string{"first", "second"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			calls = append(calls, name)
			if msg.Topic != "topic" {
				t.Errorf("middleware saw topic %q", msg.Topic)
			}
			return next(ctx, msg)
		})
	}

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("middleware calls = %v", calls)
	}
}

func TestProducer_Close(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, "topic")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrProducerClosed", err)
	}
}

func TestMessageBuilder_InvalidValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Build() error = %v, want ErrInvalidMessage", err)
	}
}
