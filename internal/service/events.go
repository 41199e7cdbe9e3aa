package service

import (
	"context"

	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// publish emits an event best effort; a broker outage never fails the call.
func publish(ctx context.Context, producer events.Producer, eventType string, roomID int64, callerID string, payload interface{}) {
	l := log.Ctx(ctx)

	event, err := events.NewEvent(eventType, roomID, callerID, payload)
	if err != nil {
		l.Warn().Err(err).Str("event_type", eventType).Msg("failed to build event")
		return
	}
	if err := producer.Publish(ctx, event); err != nil {
		l.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
