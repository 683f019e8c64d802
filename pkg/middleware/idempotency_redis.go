package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore shares cached responses between server instances.
// Entries expire through Redis TTLs, so there is no cleanup loop.
type RedisIdempotencyStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration, prefix string) *RedisIdempotencyStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "idem"
	}
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	data, err := s.rdb.Get(ctx, s.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var response CachedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &response, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) error {
	response.CreatedAt = time.Now()
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}

	if err := s.rdb.Set(ctx, s.prefix+":"+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Stop is a no-op; the client is closed by whoever opened it.
func (s *RedisIdempotencyStore) Stop() {}
