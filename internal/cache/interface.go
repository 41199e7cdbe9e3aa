package cache

import (
	"context"
	"errors"
	"time"

	"github.com/caffeinepub/cybermeet/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// MessageCacheResult is a cached snapshot of a room's message log.
type MessageCacheResult struct {
	Messages []domain.Message `json:"messages"`
}

// MessageCache caches message-log snapshots between client polls.
type MessageCache interface {
	Get(ctx context.Context, key string) (*MessageCacheResult, error)
	Set(ctx context.Context, key string, result *MessageCacheResult, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	BuildKey(roomID int64) string
	Close() error
}
