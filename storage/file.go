package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps one JSON file per key in a directory. File names are the
// xxhash of the key, so any key string is safe to use. Writes go through a
// temporary file and a rename, so a crash never leaves a half-written save.
//
// Calls for different keys may run concurrently; concurrent writes to the
// same key race and the last rename wins.
type FileStore struct {
	dir string
	log *zap.Logger
}

// envelope wraps the stored value with its key so a directory listing can
// be mapped back to keys.
type envelope struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+".json")
}

// Save implements Store.
func (s *FileStore) Save(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		s.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %q: %w", key, err)
	}
	blob, err := json.Marshal(envelope{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		s.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		s.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %q: %w", key, err)
	}
	s.log.Debug("data saved", zap.String("key", key), zap.Int("bytes", len(blob)))
	return nil
}

// Load implements Store.
func (s *FileStore) Load(key string, v any) (bool, error) {
	blob, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no data found", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		s.log.Error("load failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("load %q: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		s.log.Error("load failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	// A hash collision would surface as a different key in the envelope.
	if env.Key != key {
		s.log.Warn("save file key mismatch", zap.String("key", key), zap.String("stored", env.Key))
		return false, nil
	}
	if err := json.Unmarshal(env.Value, v); err != nil {
		s.log.Error("load failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	return true, nil
}

// Clear implements Store.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("clear failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("clear %q: %w", key, err)
	}
	s.log.Debug("data cleared", zap.String("key", key))
	return nil
}
