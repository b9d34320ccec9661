// Package storage persists game data under string keys.
//
// Values are JSON-encoded. Loading a key that was never saved is not an
// error: Load reports found == false. Failures are returned to the caller
// and logged; they never affect the frame loop.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store saves, loads and clears values by key.
type Store interface {
	// Save encodes v and stores it under key, replacing any previous value.
	Save(key string, v any) error

	// Load decodes the value stored under key into v. found is false when
	// nothing is stored under key; v is left untouched in that case.
	Load(key string, v any) (found bool, err error)

	// Clear removes key. Clearing an absent key is not an error.
	Clear(key string) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps encoded values in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  *zap.Logger
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(log *zap.Logger) *MemoryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemoryStore{data: make(map[string][]byte), log: log}
}

// Save implements Store.
func (s *MemoryStore) Save(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		s.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %q: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = blob
	s.mu.Unlock()
	s.log.Debug("data saved", zap.String("key", key), zap.Int("bytes", len(blob)))
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(key string, v any) (bool, error) {
	s.mu.RLock()
	blob, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		s.log.Debug("no data found", zap.String("key", key))
		return false, nil
	}
	if err := json.Unmarshal(blob, v); err != nil {
		s.log.Error("load failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	return true, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	s.log.Debug("data cleared", zap.String("key", key))
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
