package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caffeinepub/cybermeet/internal/config"
)

// RedisMessageCache implements MessageCache on redis.
type RedisMessageCache struct {
	client *redis.Client
	prefix string
}

// NewRedisMessageCache connects to redis and returns a message cache.
func NewRedisMessageCache(cfg config.RedisConfig, prefix string) (*RedisMessageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisMessageCache{
		client: client,
		prefix: prefix,
	}, nil
}

// BuildKey builds the cache key for a room's message log.
func (c *RedisMessageCache) BuildKey(roomID int64) string {
	return fmt.Sprintf("%s:messages:%d", c.prefix, roomID)
}

// Get reads a cached snapshot.
func (c *RedisMessageCache) Get(ctx context.Context, key string) (*MessageCacheResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var result MessageCacheResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &result, nil
}

// Set stores a snapshot with a TTL.
func (c *RedisMessageCache) Set(ctx context.Context, key string, result *MessageCacheResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

// Delete drops cached snapshots, typically right after an append.
func (c *RedisMessageCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	return nil
}

// Close tears down the redis connection.
func (c *RedisMessageCache) Close() error {
	return c.client.Close()
}
