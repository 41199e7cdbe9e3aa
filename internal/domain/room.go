package domain

import (
	"fmt"
	"time"
)

// CodeSpace is the number of distinct access codes. Codes are 7-digit
// decimal values in [0, CodeSpace).
const CodeSpace = 10_000_000

// Room represents a meeting room. The access code is the only way in.
type Room struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Creator      string    `json:"creator"`
	Code         int64     `json:"code"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// FormatCode renders an access code as its 7-digit display form.
func FormatCode(code int64) string {
	return fmt.Sprintf("%07d", code)
}

// CreateRoomRequest represents a create room request.
type CreateRoomRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=64"`
	Description string `json:"description" binding:"max=256"`
}

// JoinRoomRequest represents a join-by-code request. Code is a pointer so
// that a legitimate code of 0000000 still passes required validation.
type JoinRoomRequest struct {
	Code *int64 `json:"code" binding:"required"`
}

// CreateRoomResponse is returned when a room is created.
type CreateRoomResponse struct {
	ID          int64  `json:"id"`
	Code        int64  `json:"code"`
	CodeDisplay string `json:"code_display"`
}

// RoomResponse is the externally visible projection of a room.
type RoomResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Creator      string   `json:"creator"`
	Code         int64    `json:"code"`
	CodeDisplay  string   `json:"code_display"`
	Participants []string `json:"participants"`
}

// ToResponse converts Room to RoomResponse.
func (r *Room) ToResponse() RoomResponse {
	participants := r.Participants
	if participants == nil {
		participants = []string{}
	}
	return RoomResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Creator:      r.Creator,
		Code:         r.Code,
		CodeDisplay:  FormatCode(r.Code),
		Participants: participants,
	}
}
