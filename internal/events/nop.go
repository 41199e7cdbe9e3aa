package events

import "context"

// NopProducer is used when the event bus is disabled.
type NopProducer struct{}

// NewNopProducer returns a producer that discards every event.
func NewNopProducer() *NopProducer {
	return &NopProducer{}
}

func (NopProducer) Publish(ctx context.Context, event *Event) error {
	return nil
}

func (NopProducer) Close() error {
	return nil
}
