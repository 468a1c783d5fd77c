// Package cache provides a Redis cache-aside store for YouTube API responses
// within a session. When Redis is not configured or unreachable the store is
// disabled and every operation is a no-op.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix   = "tl:"
	pingTimeout = 3 * time.Second
)

// Store is a TTL-bounded byte cache backed by Redis.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New connects to redisURL. An empty or invalid URL, or a failed ping,
// returns a disabled store.
func New(redisURL string, ttl time.Duration, logger zerolog.Logger) *Store {
	s := &Store{ttl: ttl, logger: logger}
	if redisURL == "" {
		logger.Debug().Msg("redis: no URL configured, caching disabled")
		return s
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return s
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		_ = rdb.Close()
		return s
	}

	logger.Debug().Dur("ttl", ttl).Msg("redis: connected, caching enabled")
	s.rdb = rdb
	return s
}

// Enabled reports whether the store is backed by a live Redis connection.
func (s *Store) Enabled() bool {
	return s.rdb != nil
}

// Get returns the cached value for key, or nil if it is absent or the store is disabled.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.rdb == nil {
		return nil, nil
	}
	data, err := s.rdb.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug().Str("key", Key(key)).Msg("cache miss")
		return nil, nil
	}
	return data, err
}

// Set stores value under key for the store's TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, Key(key), value, s.ttl).Err()
}

// Close shuts down the Redis connection.
func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// Key namespaces and hashes a raw cache key so request URLs never appear in Redis.
func Key(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return keyPrefix + hex.EncodeToString(h[:])[:32]
}
