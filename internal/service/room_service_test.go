package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/cybermeet/internal/cache"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/repository"
)

func createReq(title string) *domain.CreateRoomRequest {
	return &domain.CreateRoomRequest{Title: title, Description: "test room"}
}

func TestCreateRoom(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()
	ctx := context.Background()

	first, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	second, err := svc.CreateRoom(ctx, "alice", createReq("retro"))
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.GreaterOrEqual(t, first.Code, int64(0))
	assert.Less(t, first.Code, int64(domain.CodeSpace))
	assert.Len(t, first.CodeDisplay, 7)

	rooms, err := svc.GetMyRooms(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "standup", rooms[0].Title)
	assert.Equal(t, []string{"alice"}, rooms[0].Participants)
}

// codeTakenRepo fails Create with ErrCodeTaken a fixed number of times
// before delegating, simulating collisions on the code's unique index.
type codeTakenRepo struct {
	repository.RoomRepository
	failures int
	attempts int
}

func (r *codeTakenRepo) Create(ctx context.Context, room *domain.Room) error {
	r.attempts++
	if r.attempts <= r.failures {
		return repository.ErrCodeTaken
	}
	return r.RoomRepository.Create(ctx, room)
}

func TestCreateRoomResamplesCodeOnCollision(t *testing.T) {
	d := setupDeps(t)
	repo := &codeTakenRepo{RoomRepository: d.rooms, failures: 3}
	svc := NewRoomService(repo, d.profiles, events.NewNopProducer())
	ctx := context.Background()

	resp, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	assert.Equal(t, 4, repo.attempts)
	assert.NotZero(t, resp.ID)
}

func TestCreateRoomCodeExhausted(t *testing.T) {
	d := setupDeps(t)
	repo := &codeTakenRepo{RoomRepository: d.rooms, failures: 1 << 20}
	svc := NewRoomService(repo, d.profiles, events.NewNopProducer())

	_, err := svc.CreateRoom(context.Background(), "alice", createReq("standup"))
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestJoinRoom(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()
	ctx := context.Background()

	resp, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)

	require.NoError(t, svc.JoinRoom(ctx, "bob", resp.Code))
	// Joining again is a no-op.
	require.NoError(t, svc.JoinRoom(ctx, "bob", resp.Code))

	rooms, err := svc.GetMyRooms(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, resp.ID, rooms[0].ID)
	assert.Len(t, rooms[0].Participants, 2)
}

func TestJoinRoomUnknownCode(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()

	err := svc.JoinRoom(context.Background(), "bob", 1234567)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLeaveRoom(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()
	ctx := context.Background()

	resp, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom(ctx, "bob", resp.Code))

	require.NoError(t, svc.LeaveRoom(ctx, "bob", resp.ID))

	rooms, err := svc.GetMyRooms(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	// Leaving a room the caller never joined is a no-op.
	require.NoError(t, svc.LeaveRoom(ctx, "carol", resp.ID))

	// Leaving an unknown room is an error.
	err = svc.LeaveRoom(ctx, "bob", resp.ID+100)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRoomParticipants(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()
	profiles := NewProfileService(d.profiles)
	ctx := context.Background()

	resp, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom(ctx, "bob", resp.Code))
	require.NoError(t, svc.JoinRoom(ctx, "carol", resp.Code))

	require.NoError(t, profiles.SaveProfile(ctx, "alice", &domain.Profile{DisplayName: "Alice", Role: domain.ProfileRoleEngineer}))
	require.NoError(t, profiles.SaveProfile(ctx, "bob", &domain.Profile{DisplayName: "Bob", Role: domain.ProfileRoleClient}))

	// carol never saved a profile and is omitted from the listing.
	participants, err := svc.GetRoomParticipants(ctx, "alice", resp.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "alice", participants[0].CallerID)
	assert.Equal(t, "Alice", participants[0].Profile.DisplayName)
	assert.Equal(t, "bob", participants[1].CallerID)
}

// failingProducer rejects every publish, simulating a broker outage.
type failingProducer struct {
	published int
}

func (p *failingProducer) Publish(ctx context.Context, event *events.Event) error {
	p.published++
	return errors.New("broker unavailable")
}

func (p *failingProducer) Close() error { return nil }

func TestEventPublishFailuresDoNotFailCalls(t *testing.T) {
	d := setupDeps(t)
	producer := &failingProducer{}
	rooms := NewRoomService(d.rooms, d.profiles, producer)
	msgs := NewMessageService(d.rooms, d.messages, cache.NewNopMessageCache(), time.Second, producer)
	access := NewAccessService(d.roles, []string{"root"}, producer)
	ctx := context.Background()

	resp, err := rooms.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)
	require.NoError(t, rooms.JoinRoom(ctx, "bob", resp.Code))
	require.NoError(t, msgs.SendMessage(ctx, "alice", resp.ID, "hello"))
	require.NoError(t, rooms.LeaveRoom(ctx, "bob", resp.ID))
	require.NoError(t, access.AssignRole(ctx, "root", "alice", domain.OperatorRoleUser))

	assert.Equal(t, 5, producer.published)
}

func TestGetRoomParticipantsRequiresMembership(t *testing.T) {
	d := setupDeps(t)
	svc := d.roomService()
	ctx := context.Background()

	resp, err := svc.CreateRoom(ctx, "alice", createReq("standup"))
	require.NoError(t, err)

	_, err = svc.GetRoomParticipants(ctx, "mallory", resp.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.GetRoomParticipants(ctx, "alice", resp.ID+100)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
