package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types emitted by the service for downstream consumers
// (notification fan-out, analytics). Delivery is best effort; the core
// never fails a request because an event could not be produced.
const (
	TypeRoomCreated  = "room.created"
	TypeRoomJoined   = "room.joined"
	TypeRoomLeft     = "room.left"
	TypeMessageSent  = "message.sent"
	TypeRoleAssigned = "role.assigned"
)

// Event is the wire format produced to the event topic.
type Event struct {
	Type      string          `json:"type"`
	RoomID    int64           `json:"room_id,omitempty"`
	CallerID  string          `json:"caller_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(eventType string, roomID int64, callerID string, payload interface{}) (*Event, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return &Event{
		Type:      eventType,
		RoomID:    roomID,
		CallerID:  callerID,
		Payload:   data,
		Timestamp: time.Now(),
	}, nil
}

// Producer publishes events to the event bus.
type Producer interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
