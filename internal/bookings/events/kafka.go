package events

import (
	"context"

	"tabletime/pkg/kafka"
	"tabletime/pkg/middleware"
	"tabletime/pkg/model"
)

const schemaVersion = "1"

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

// NewKafkaPublisher sends each event keyed by booking code so all events
// for one booking stay ordered on a single partition.
func NewKafkaPublisher(producer *kafka.Producer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Code).
		WithValue(event).
		WithTimestamp(event.OccurredAt).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
