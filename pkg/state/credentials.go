package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tokenFile = "token"

// Credentials is the process-wide credential slot. The token is read from
// disk once at construction; Get serves it from memory afterwards so request
// paths never touch the filesystem.
type Credentials struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewCredentials loads the stored token from baseDir. A missing or unreadable
// token file yields an empty slot, not an error: unauthenticated operation is
// a supported mode.
func NewCredentials(baseDir string) (*Credentials, error) {
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

	c := &Credentials{path: filepath.Join(baseDir, tokenFile)}
	if data, err := os.ReadFile(c.path); err == nil {
		c.token = strings.TrimSpace(string(data))
	}
	return c, nil
}

// Get returns the current token, or "" when no credential is set.
func (c *Credentials) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Set stores the token in memory and on disk. An empty token clears the slot
// and removes the token file.
func (c *Credentials) Set(token string) error {
	token = strings.TrimSpace(token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token == "" {
		c.token = ""
		if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove token file: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(c.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	c.token = token
	return nil
}
