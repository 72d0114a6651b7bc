// Package state persists session-scoped UI state between runs: the last
// browsed repository page, the active filter selection, recent search queries,
// and the API credential.
//
// Everything except the credential is best-effort: a failed read behaves as
// "nothing saved" and a failed write is logged and swallowed, so a broken
// config directory never breaks browsing. The credential is the exception
// because losing a just-entered token silently would be worse than surfacing
// the write failure.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/query"
)

const (
	// SnapshotLimit caps how many repositories a saved snapshot carries.
	SnapshotLimit = 50

	// HistoryLimit caps how many recent search queries are kept.
	HistoryLimit = 5
)

const (
	snapshotFile = "snapshot.json"
	filtersFile  = "filters.json"
	historyFile  = "history.json"
)

// Snapshot is the last browsed repository page together with the filter
// selection that produced it.
type Snapshot struct {
	Repos   []github.Repository `json:"repos"`
	Filters query.FilterState   `json:"filters"`
	SavedAt time.Time           `json:"saved_at"`
}

// Store is a file-backed session state store.
// State files are stored as JSON in a config directory.
type Store struct {
	mu      sync.RWMutex
	baseDir string
	logger  *log.Logger
}

// NewStore creates a session state store rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/openlens/
func NewStore(baseDir string, logger *log.Logger) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "openlens")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}, nil
}

// Path returns the base directory for state files.
func (s *Store) Path() string {
	return s.baseDir
}

// SaveSnapshot persists the browsed page and its filters, truncated to
// SnapshotLimit repositories. Failures are logged and swallowed.
func (s *Store) SaveSnapshot(repos []github.Repository, filters query.FilterState) {
	if len(repos) > SnapshotLimit {
		repos = repos[:SnapshotLimit]
	}
	s.write(snapshotFile, Snapshot{Repos: repos, Filters: filters, SavedAt: time.Now()})
}

// LoadSnapshot returns the saved snapshot, or false when none exists or the
// saved file cannot be read.
func (s *Store) LoadSnapshot() (Snapshot, bool) {
	var snap Snapshot
	if !s.read(snapshotFile, &snap) {
		return Snapshot{}, false
	}
	return snap, true
}

// SaveFilters persists the filter selection on its own, so filters survive
// even when no page was browsed. Failures are logged and swallowed.
func (s *Store) SaveFilters(filters query.FilterState) {
	s.write(filtersFile, filters)
}

// LoadFilters returns the saved filter selection, or the defaults when
// nothing is saved.
func (s *Store) LoadFilters() query.FilterState {
	var filters query.FilterState
	if !s.read(filtersFile, &filters) {
		return query.DefaultFilters()
	}
	return filters
}

// AddHistory records a search query as most recent. Duplicates move to the
// front instead of repeating, blank queries are ignored, and the list is
// capped at HistoryLimit.
func (s *Store) AddHistory(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.readHistoryLocked()
	updated := make([]string, 0, HistoryLimit)
	updated = append(updated, q)
	for _, prev := range history {
		if prev == q {
			continue
		}
		updated = append(updated, prev)
		if len(updated) == HistoryLimit {
			break
		}
	}
	s.writeLocked(historyFile, updated)
}

// History returns recent search queries, most recent first.
func (s *Store) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readHistoryLocked()
}

// ClearHistory removes all recorded search queries.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.baseDir, historyFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("state clear failed", "file", historyFile, "error", err)
	}
}

func (s *Store) readHistoryLocked() []string {
	data, err := os.ReadFile(filepath.Join(s.baseDir, historyFile))
	if err != nil {
		return nil
	}
	var history []string
	if err := json.Unmarshal(data, &history); err != nil {
		s.logger.Warn("state entry corrupt", "file", historyFile, "error", err)
		return nil
	}
	return history
}

func (s *Store) write(name string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(name, v)
}

func (s *Store) writeLocked(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Warn("state write failed", "file", name, "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, name), data, 0600); err != nil {
		s.logger.Warn("state write failed", "file", name, "error", err)
	}
}

func (s *Store) read(name string, v any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state read failed", "file", name, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("state entry corrupt", "file", name, "error", err)
		return false
	}
	return true
}
