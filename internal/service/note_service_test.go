package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	d := setupDeps(t)
	svc := NewNoteService(d.notes)
	ctx := context.Background()

	note, err := svc.GetNote(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Empty(t, note)

	require.NoError(t, svc.SaveNote(ctx, "alice", 1, "remember the milk"))
	require.NoError(t, svc.SaveNote(ctx, "alice", 1, "remember the agenda"))

	note, err = svc.GetNote(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, "remember the agenda", note)
}

func TestNotesArePrivatePerCaller(t *testing.T) {
	d := setupDeps(t)
	svc := NewNoteService(d.notes)
	ctx := context.Background()

	require.NoError(t, svc.SaveNote(ctx, "alice", 1, "alice's note"))

	note, err := svc.GetNote(ctx, "bob", 1)
	require.NoError(t, err)
	assert.Empty(t, note)

	require.NoError(t, svc.SaveNote(ctx, "bob", 1, "bob's note"))
	note, err = svc.GetNote(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice's note", note)
}

func TestNotesSurviveLeavingRoom(t *testing.T) {
	d := setupDeps(t)
	rooms := d.roomService()
	notes := NewNoteService(d.notes)
	ctx := context.Background()

	resp, err := rooms.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	require.NoError(t, rooms.JoinRoom(ctx, "bob", resp.Code))
	require.NoError(t, notes.SaveNote(ctx, "bob", resp.ID, "my takeaways"))

	require.NoError(t, rooms.LeaveRoom(ctx, "bob", resp.ID))

	note, err := notes.GetNote(ctx, "bob", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "my takeaways", note)
}
