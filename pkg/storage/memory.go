package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// memoryKV implements KV with an in-memory map. Used by tests and when
// persistence is disabled.
type memoryKV struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryKV creates an in-memory KV.
func NewMemoryKV() KV {
	return &memoryKV{docs: make(map[string][]byte)}
}

func (s *memoryKV) Load(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		delete(s.docs, key)
		return false, nil
	}
	return true, nil
}

func (s *memoryKV) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.docs[key] = data
	return nil
}

func (s *memoryKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}
