package store

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cache entries in Redis under a key prefix.
//
// Entries are stored without a Redis expiration: staleness is the caller's
// lazy TTL check, the same as for the file backend, so a stale entry stays
// readable until it is overwritten.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *log.Logger
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr, prefix string, logger *log.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, prefix: prefix, logger: pickLogger(logger)}, nil
}

// Get retrieves an entry by key. Connection failures report absent.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return Entry{}, false
	}
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "err", err)
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("cache entry corrupt", "key", key, "err", err)
		return Entry{}, false
	}
	return entry, true
}

// Put stores v under key. Failures are logged and swallowed.
func (s *RedisStore) Put(ctx context.Context, key string, v any) {
	entry, err := newEntry(v)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "err", err)
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "err", err)
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
