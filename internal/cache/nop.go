package cache

import (
	"context"
	"fmt"
	"time"
)

// NopMessageCache is used when redis is disabled; every read is a miss and
// writes are discarded, so the service always reads through to the store.
type NopMessageCache struct{}

// NewNopMessageCache returns a cache that caches nothing.
func NewNopMessageCache() *NopMessageCache {
	return &NopMessageCache{}
}

func (NopMessageCache) Get(ctx context.Context, key string) (*MessageCacheResult, error) {
	return nil, ErrCacheMiss
}

func (NopMessageCache) Set(ctx context.Context, key string, result *MessageCacheResult, ttl time.Duration) error {
	return nil
}

func (NopMessageCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NopMessageCache) BuildKey(roomID int64) string {
	return fmt.Sprintf("messages:%d", roomID)
}

func (NopMessageCache) Close() error {
	return nil
}
