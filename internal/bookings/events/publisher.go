package events

import (
	"context"

	"tabletime/pkg/model"
)

// Publisher delivers booking lifecycle events. Delivery is best effort:
// callers log a failure and carry on.
type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, model.BookingEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
