package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// fileKV implements KV with one JSON file per key inside a data directory.
type fileKV struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

// NewFileKV creates a file-backed KV rooted at dir, creating the directory if
// needed.
func NewFileKV(dir string, logger *slog.Logger) (KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &fileKV{dir: dir, logger: logger.With("component", "storage")}, nil
}

func (s *fileKV) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileKV) Load(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Malformed document: discard it and fall back to the zero value,
		// same recovery the storefront applied to corrupt local storage.
		s.logger.Warn("Discarding corrupt document", "key", key, "error", err)
		_ = os.Remove(s.path(key))
		return false, nil
	}
	return true, nil
}

func (s *fileKV) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	// Write-then-rename so a crash mid-write cannot corrupt the document.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *fileKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
