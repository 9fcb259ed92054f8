package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Cache is the key-value store used for the channel-history cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// RedisCache implements Cache on a Redis connection.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get returns the cached value, or an empty string for a missing key.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value with an expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedHistory wraps a HistorySource with a cache on channel message pages,
// so repeated runs inside the TTL skip the expensive reaction resolution.
// Cache failures degrade to the underlying source.
type CachedHistory struct {
	source HistorySource
	cache  Cache
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedHistory creates a caching wrapper around a history source.
func NewCachedHistory(source HistorySource, cache Cache, ttl time.Duration, log *logger.Logger) *CachedHistory {
	return &CachedHistory{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

// Channels passes through to the underlying source; the channel list is one
// cheap call and staleness there is worse than refetching.
func (h *CachedHistory) Channels(ctx context.Context) ([]Channel, error) {
	return h.source.Channels(ctx)
}

// Messages returns the cached page for the channel when present, fetching and
// caching it otherwise.
func (h *CachedHistory) Messages(ctx context.Context, channel Channel) ([]Message, error) {
	key := "history:" + channel.ID

	cached, err := h.cache.Get(ctx, key)
	if err != nil {
		h.log.Warn().Err(err).Str("channel", channel.Name).Msg("History cache read failed")
	} else if cached != "" {
		var messages []Message
		if err := json.Unmarshal([]byte(cached), &messages); err == nil {
			h.log.Debug().Str("channel", channel.Name).Msg("History cache hit")
			return messages, nil
		}
		h.log.Warn().Err(err).Str("channel", channel.Name).Msg("Discarding corrupt history cache entry")
	}

	messages, err := h.source.Messages(ctx, channel)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(messages)
	if err == nil {
		if err := h.cache.Set(ctx, key, string(payload), h.ttl); err != nil {
			h.log.Warn().Err(err).Str("channel", channel.Name).Msg("History cache write failed")
		}
	}

	return messages, nil
}
