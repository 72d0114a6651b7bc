// Package store provides durable keyed caching of API responses.
//
// Each entry is an opaque JSON payload stamped with its write time. The store
// performs no interpretation of key structure and no staleness checks of its
// own: time-to-live policy belongs to the caller, which compares the entry's
// write time against the TTL of its cache category at read time. Stale entries
// are left in place until overwritten; there is no background eviction.
//
// Store operations never fail past their boundary. A failed read reports
// "absent" and a failed write is a no-op, both logged as warnings, so that a
// broken cache degrades to uncached operation instead of breaking callers.
//
// Backends:
//   - FileStore: entries as files under a cache directory (default)
//   - RedisStore: entries in Redis, for a shared cache between instances
//   - NullStore: caching disabled
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// Entry wraps a cached payload with its write timestamp.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	WrittenAt time.Time       `json:"written_at"`
}

// Fresh reports whether the entry is younger than ttl.
// An entry is stale once now - WrittenAt >= ttl.
func (e Entry) Fresh(ttl time.Duration) bool {
	return time.Since(e.WrittenAt) < ttl
}

// Decode unmarshals the entry payload into v.
func (e Entry) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Store is the interface for durable cache backends.
type Store interface {
	// Get retrieves an entry by key.
	// Returns false for missing keys and for any underlying read failure.
	Get(ctx context.Context, key string) (Entry, bool)

	// Put stores v as the entry payload under key, stamped with the current
	// time. Failures are swallowed; an existing entry is overwritten wholesale.
	Put(ctx context.Context, key string, v any)

	// Close releases any backend resources.
	Close() error
}

// newEntry marshals v into an Entry stamped with the current time.
func newEntry(v any) (Entry, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Payload: payload, WrittenAt: time.Now()}, nil
}

// pickLogger returns logger or the package default when nil.
func pickLogger(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.Default()
}
