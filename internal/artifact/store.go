// Package artifact provides per-run scratch storage for exported document
// bytes. Each pipeline run owns one Store; ReleaseAll tears the whole
// scratch directory down at end of run.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps artifacts in an exclusive temporary directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the scratch directory for one pipeline run.
func NewStore(logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := os.MkdirTemp("", "content-run-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	logger.Debug("artifact.store.created", "dir", dir)
	return &Store{dir: dir, logger: logger}, nil
}

// PersistBytes writes binary content under name and returns the full path.
func (s *Store) PersistBytes(content []byte, name string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("persist %s: no content provided", name)
	}
	if s.dir == "" {
		return "", fmt.Errorf("persist %s: store already released", name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		s.logger.Error("artifact.persist.failed", "name", name, "error", err)
		return "", fmt.Errorf("persist %s: %w", name, err)
	}
	return path, nil
}

// PersistText writes text content under name, normalizing line endings.
func (s *Store) PersistText(content, name string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("persist %s: no content provided", name)
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return s.PersistBytes([]byte(normalized), name)
}

// Path returns where an artifact with the given name lives (whether or not
// it has been persisted yet).
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes a single artifact. Returns false when it was not present.
func (s *Store) Remove(name string) bool {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("artifact.remove.failed", "name", name, "error", err)
		}
		return false
	}
	return true
}

// ReleaseAll deletes every artifact and the scratch directory itself. Safe to
// call more than once and with files already removed.
func (s *Store) ReleaseAll() {
	if s.dir == "" {
		return
	}
	if err := os.RemoveAll(s.dir); err != nil {
		s.logger.Warn("artifact.release.failed", "dir", s.dir, "error", err)
		return
	}
	s.logger.Debug("artifact.store.released", "dir", s.dir)
	s.dir = ""
}
