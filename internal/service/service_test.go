package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caffeinepub/cybermeet/internal/cache"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/database"
)

// deps bundles the real repositories every service test wires against an
// in-memory sqlite database.
type deps struct {
	db       *gorm.DB
	rooms    repository.RoomRepository
	messages repository.MessageRepository
	profiles repository.ProfileRepository
	roles    repository.OperatorRoleRepository
	notes    repository.NoteRepository
}

func setupDeps(t *testing.T) *deps {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

	return &deps{
		db:       db,
		rooms:    repository.NewGormRoomRepository(db),
		messages: repository.NewGormMessageRepository(db),
		profiles: repository.NewGormProfileRepository(db),
		roles:    repository.NewGormOperatorRoleRepository(db),
		notes:    repository.NewGormNoteRepository(db),
	}
}

func (d *deps) roomService() RoomService {
	return NewRoomService(d.rooms, d.profiles, events.NewNopProducer())
}

func (d *deps) messageService() MessageService {
	return NewMessageService(d.rooms, d.messages, cache.NewNopMessageCache(), time.Second, events.NewNopProducer())
}
