package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test: sqlite gives every plain
	// :memory: connection its own database, which breaks under GORM's
	// connection pool.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: dsn,
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db,
		&domain.ProfileModel{},
		&domain.OperatorRoleModel{},
		&domain.RoomModel{},
		&domain.ParticipantModel{},
		&domain.MessageModel{},
		&domain.NoteModel{},
	))
	return db
}

func newRoom(creator string, code int64) *domain.Room {
	return &domain.Room{
		Title:       "Ops",
		Description: "status sync",
		Creator:     creator,
		Code:        code,
	}
}

func TestRoomRepositoryCreate(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	first := newRoom("alice", 1234567)
	require.NoError(t, repo.Create(ctx, first))

	second := newRoom("alice", 7654321)
	require.NoError(t, repo.Create(ctx, second))

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", got.Title)
	assert.Equal(t, []string{"alice"}, got.Participants)
}

func TestRoomRepositoryCodeCollision(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRoom("alice", 1111111)))

	err := repo.Create(ctx, newRoom("bob", 1111111))
	assert.ErrorIs(t, err, ErrCodeTaken)

	// The failed create must not leave a half-written room behind.
	_, err = repo.GetByCode(ctx, 1111111)
	require.NoError(t, err)
	rooms, err := repo.GetRoomsByParticipant(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomRepositoryGetByCode(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := newRoom("alice", 2468013)
	require.NoError(t, repo.Create(ctx, room))

	got, err := repo.GetByCode(ctx, 2468013)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)

	_, err = repo.GetByCode(ctx, 9999999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomRepositoryAddParticipantIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := newRoom("alice", 1234567)
	require.NoError(t, repo.Create(ctx, room))

	require.NoError(t, repo.AddParticipant(ctx, room.ID, "bob"))
	require.NoError(t, repo.AddParticipant(ctx, room.ID, "bob"))

	participants, err := repo.GetParticipants(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
	assert.Contains(t, participants, "alice")
	assert.Contains(t, participants, "bob")
}

func TestRoomRepositoryRemoveParticipant(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := newRoom("alice", 1234567)
	require.NoError(t, repo.Create(ctx, room))
	require.NoError(t, repo.AddParticipant(ctx, room.ID, "bob"))

	require.NoError(t, repo.RemoveParticipant(ctx, room.ID, "bob"))

	// Removing a caller who was never a member is a no-op.
	require.NoError(t, repo.RemoveParticipant(ctx, room.ID, "carol"))

	participants, err := repo.GetParticipants(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, participants)

	// Emptying a room must not delete it.
	require.NoError(t, repo.RemoveParticipant(ctx, room.ID, "alice"))
	got, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)
}

func TestRoomRepositoryIsParticipant(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := newRoom("alice", 1234567)
	require.NoError(t, repo.Create(ctx, room))

	ok, err := repo.IsParticipant(ctx, room.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsParticipant(ctx, room.ID, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoomRepositoryGetRoomsByParticipant(t *testing.T) {
	db := setupDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	first := newRoom("alice", 1000001)
	second := newRoom("bob", 1000002)
	third := newRoom("carol", 1000003)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))
	require.NoError(t, repo.AddParticipant(ctx, second.ID, "alice"))

	rooms, err := repo.GetRoomsByParticipant(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, first.ID, rooms[0].ID)
	assert.Equal(t, second.ID, rooms[1].ID)
	assert.Contains(t, rooms[1].Participants, "alice")
	assert.Contains(t, rooms[1].Participants, "bob")
}

func TestMessageRepositoryAppendOrder(t *testing.T) {
	db := setupDB(t)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := &domain.Message{
			MessageID: fmt.Sprintf("msg-%d", i),
			RoomID:    1,
			Sender:    "alice",
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: int64(1000 + i),
		}
		require.NoError(t, repo.Append(ctx, msg))
		assert.NotZero(t, msg.Seq)
	}

	// A message in another room must not leak into the listing.
	require.NoError(t, repo.Append(ctx, &domain.Message{
		MessageID: "other-room",
		RoomID:    2,
		Sender:    "bob",
		Content:   "elsewhere",
		Timestamp: 999,
	}))

	messages, err := repo.ListByRoom(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		assert.Equal(t, "alice", msg.Sender)
		if i > 0 {
			assert.Greater(t, msg.Seq, messages[i-1].Seq)
			assert.GreaterOrEqual(t, msg.Timestamp, messages[i-1].Timestamp)
		}
	}
}

func TestProfileRepositorySaveOverwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	require.NoError(t, repo.Save(ctx, "alice", &domain.Profile{
		DisplayName: "Alice",
		Role:        domain.ProfileRoleAnalyst,
	}))
	require.NoError(t, repo.Save(ctx, "alice", &domain.Profile{
		DisplayName: "Alice L.",
		Role:        domain.ProfileRoleConsultant,
	}))

	profile, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", profile.DisplayName)
	assert.Equal(t, domain.ProfileRoleConsultant, profile.Role)
}

func TestProfileRepositoryGetMany(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "alice", &domain.Profile{DisplayName: "Alice", Role: domain.ProfileRoleEngineer}))
	require.NoError(t, repo.Save(ctx, "bob", &domain.Profile{DisplayName: "Bob", Role: domain.ProfileRoleClient}))

	profiles, err := repo.GetMany(ctx, []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "Alice", profiles["alice"].DisplayName)
	_, ok := profiles["carol"]
	assert.False(t, ok)

	profiles, err = repo.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestOperatorRoleRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewGormOperatorRoleRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrRoleNotAssigned)

	require.NoError(t, repo.Assign(ctx, "alice", domain.OperatorRoleUser))
	role, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.OperatorRoleUser, role)

	require.NoError(t, repo.Assign(ctx, "alice", domain.OperatorRoleAdmin))
	role, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.OperatorRoleAdmin, role)
}

func TestNoteRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewGormNoteRepository(db)
	ctx := context.Background()

	note, err := repo.Get(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Empty(t, note)

	require.NoError(t, repo.Save(ctx, 1, "alice", "first draft"))
	require.NoError(t, repo.Save(ctx, 1, "alice", "final"))
	require.NoError(t, repo.Save(ctx, 1, "bob", "bob's note"))
	require.NoError(t, repo.Save(ctx, 2, "alice", "other room"))

	note, err = repo.Get(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, "final", note)

	note, err = repo.Get(ctx, 1, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob's note", note)

	note, err = repo.Get(ctx, 2, "alice")
	require.NoError(t, err)
	assert.Equal(t, "other room", note)
}
