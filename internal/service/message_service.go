package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/caffeinepub/cybermeet/internal/cache"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// messageServiceImpl implements MessageService.
type messageServiceImpl struct {
	rooms    repository.RoomRepository
	repo     repository.MessageRepository
	cache    cache.MessageCache
	cacheTTL time.Duration
	producer events.Producer
	sf       singleflight.Group

	// Per-room timestamp clamp: wall clocks can step backwards, append
	// order must not. Timestamps are strictly increasing within a room.
	// gen counts appends per room; the read path uses it to reject cache
	// writes that would reinstate a snapshot an append already invalidated.
	mu     sync.Mutex
	lastTS map[int64]int64
	gen    map[int64]uint64
}

// NewMessageService creates a new message service.
func NewMessageService(
	rooms repository.RoomRepository,
	repo repository.MessageRepository,
	msgCache cache.MessageCache,
	cacheTTL time.Duration,
	producer events.Producer,
) MessageService {
	return &messageServiceImpl{
		rooms:    rooms,
		repo:     repo,
		cache:    msgCache,
		cacheTTL: cacheTTL,
		producer: producer,
		lastTS:   make(map[int64]int64),
		gen:      make(map[int64]uint64),
	}
}

// SendMessage appends a message to the room's log. The caller must be a
// participant; the room must exist.
func (s *messageServiceImpl) SendMessage(ctx context.Context, callerID string, roomID int64, content string) error {
	l := log.Ctx(ctx)

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if !slices.Contains(room.Participants, callerID) {
		return ErrNotParticipant
	}

	msg := &domain.Message{
		MessageID: uuid.New().String(),
		RoomID:    roomID,
		Sender:    callerID,
		Content:   content,
		Timestamp: s.nextTimestamp(roomID),
	}

	if err := s.repo.Append(ctx, msg); err != nil {
		return err
	}

	// Bump the generation before invalidating: a poll that read the log
	// before this append sees the bump and drops its now-stale snapshot
	// instead of caching it.
	s.bumpGeneration(roomID)
	if err := s.cache.Delete(ctx, s.cache.BuildKey(roomID)); err != nil {
		l.Warn().Err(err).Int64(log.FieldRoomID, roomID).Msg("cache invalidation failed")
	}

	publish(ctx, s.producer, events.TypeMessageSent, msg.RoomID, msg.Sender, msg)
	return nil
}

// GetMessages returns the room's full log, oldest first. Clients poll this
// every few seconds, so identical concurrent reads collapse through
// singleflight and land on a short-TTL cached snapshot.
func (s *messageServiceImpl) GetMessages(ctx context.Context, callerID string, roomID int64) ([]domain.Message, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !slices.Contains(room.Participants, callerID) {
		return nil, ErrNotParticipant
	}

	cacheKey := s.cache.BuildKey(roomID)

	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.fetchWithCache(ctx, roomID, cacheKey)
	})
	if err != nil {
		return nil, err
	}

	cacheResult, ok := result.(*cache.MessageCacheResult)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}

	messages := cacheResult.Messages
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *messageServiceImpl) fetchWithCache(ctx context.Context, roomID int64, cacheKey string) (*cache.MessageCacheResult, error) {
	l := log.Ctx(ctx)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("cache get error")
	}

	gen := s.generation(roomID)

	messages, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from repository: %w", err)
	}

	result := &cache.MessageCacheResult{Messages: messages}

	// Cache the snapshot, then re-check the generation. If an append
	// invalidated the key while we were reading, either its delete ran
	// after our set (and cleared it), or we see the bump here and clear
	// our own write. Both ways no stale snapshot outlives an append.
	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		l.Warn().Err(err).Msg("cache set error")
	} else if s.generation(roomID) != gen {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			l.Warn().Err(err).Msg("stale cache cleanup error")
		}
	}

	return result, nil
}

func (s *messageServiceImpl) generation(roomID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[roomID]
}

func (s *messageServiceImpl) bumpGeneration(roomID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[roomID]++
}

// nextTimestamp hands out a strictly increasing unix-nanosecond timestamp
// for the room, so timestamp order always matches append order.
func (s *messageServiceImpl) nextTimestamp(roomID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().UnixNano()
	if last := s.lastTS[roomID]; ts <= last {
		ts = last + 1
	}
	s.lastTS[roomID] = ts
	return ts
}
