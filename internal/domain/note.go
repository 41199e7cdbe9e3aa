package domain

// Note is a per-(room, caller) private scratchpad. Only its owner can
// ever read it; it survives the owner leaving the room.
type Note struct {
	RoomID   int64  `json:"room_id"`
	CallerID string `json:"-"`
	Body     string `json:"note"`
}

// SaveNoteRequest overwrites the caller's note for a room.
type SaveNoteRequest struct {
	Note string `json:"note"`
}

// NoteResponse returns the caller's note; empty if never saved.
type NoteResponse struct {
	Note string `json:"note"`
}
