package domain

// Message is a single chat message. Immutable once appended.
// Timestamp is unix nanoseconds; retrieval order equals append order.
type Message struct {
	MessageID string `json:"message_id"`
	RoomID    int64  `json:"room_id"`
	Seq       int64  `json:"-"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// SendMessageRequest appends a message to a room's log.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}
