package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "0000000", FormatCode(0))
	assert.Equal(t, "0000042", FormatCode(42))
	assert.Equal(t, "1234567", FormatCode(1234567))
	assert.Equal(t, "9999999", FormatCode(9999999))
}

func TestRoomToResponse(t *testing.T) {
	room := &Room{
		ID:      3,
		Title:   "standup",
		Creator: "alice",
		Code:    42,
	}

	resp := room.ToResponse()
	assert.Equal(t, "0000042", resp.CodeDisplay)
	assert.NotNil(t, resp.Participants)
	assert.Empty(t, resp.Participants)

	room.Participants = []string{"alice", "bob"}
	resp = room.ToResponse()
	assert.Equal(t, []string{"alice", "bob"}, resp.Participants)
}
