package store

import "context"

// NullStore is a no-op store that never caches anything.
// Useful for testing or when caching should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always reports absent.
func (NullStore) Get(ctx context.Context, key string) (Entry, bool) {
	return Entry{}, false
}

// Put does nothing.
func (NullStore) Put(ctx context.Context, key string, v any) {}

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
