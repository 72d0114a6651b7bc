package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileStore persists cache entries as JSON files in a directory.
//
// Filenames are derived from a SHA-256 hash of the key, which keeps arbitrary
// key strings filesystem-safe and collision-free. The first two hex characters
// form a subdirectory so a long-lived cache does not pile every entry into one
// directory. Multiple processes can share a directory; the filesystem's atomic
// file operations make last-write-wins the only consistency guarantee.
type FileStore struct {
	dir    string
	logger *log.Logger
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory is created if it doesn't exist.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: pickLogger(logger)}, nil
}

// Dir returns the absolute path to the cache directory.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves an entry by key. Unreadable or corrupt entries report absent.
func (s *FileStore) Get(ctx context.Context, key string) (Entry, bool) {
	path := s.keyPath(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Entry{}, false
	}
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "err", err)
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry: drop it and report a miss.
		_ = os.Remove(path)
		s.logger.Warn("cache entry corrupt", "key", key, "err", err)
		return Entry{}, false
	}
	return entry, true
}

// Put stores v under key. Write failures are logged and swallowed.
func (s *FileStore) Put(ctx context.Context, key string, v any) {
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

	path := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// keyPath converts a cache key to a file path.
func (s *FileStore) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	hash := hex.EncodeToString(h[:])
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
