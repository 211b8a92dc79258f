package weather

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache holds assembled forecast documents per (lat,lon,units) key. A hit
// within the TTL returns the stored document unchanged.
type Cache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	Set(ctx context.Context, key string, doc json.RawMessage)
}

type memoryEntry struct {
	doc     json.RawMessage
	written time.Time
}

// MemoryCache is a mutex-guarded in-process cache. Distinct keys are never
// evicted; staleness is checked per read.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.written) >= c.ttl {
		return nil, false
	}
	return entry.doc, true
}

func (c *MemoryCache) Set(_ context.Context, key string, doc json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{doc: doc, written: c.now()}
}

// RedisCache shares the forecast cache across instances, with the TTL
// enforced server-side.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	val, err := c.client.Get(ctx, "weather:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Error().Err(err).Str("key", key).Msg("failed to read weather cache from redis")
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, doc json.RawMessage) {
	if err := c.client.Set(ctx, "weather:"+key, []byte(doc), c.ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write weather cache to redis")
	}
}
