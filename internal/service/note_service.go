package service

import (
	"context"

	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// noteServiceImpl implements NoteService. Notes are private to their owner
// and deliberately have no membership requirement: a caller who left a
// room keeps access to the note they wrote there.
type noteServiceImpl struct {
	repo repository.NoteRepository
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteServiceImpl{repo: repo}
}

// GetNote returns the caller's note for the room, or "" if none was saved.
func (s *noteServiceImpl) GetNote(ctx context.Context, callerID string, roomID int64) (string, error) {
	return s.repo.Get(ctx, roomID, callerID)
}

// SaveNote overwrites the caller's note for the room.
func (s *noteServiceImpl) SaveNote(ctx context.Context, callerID string, roomID int64, note string) error {
	l := log.Ctx(ctx)

	if err := s.repo.Save(ctx, roomID, callerID, note); err != nil {
		l.Error().Err(err).Int64(log.FieldRoomID, roomID).Msg("failed to save note")
		return err
	}
	return nil
}
