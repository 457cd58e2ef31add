package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labelscope/labelscope/internal/model"
)

// DiskStore persists OCR results across runs, one JSON file per image
// key under the cache directory
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a disk-backed OCR result store
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Evidence  *model.Evidence `json:"evidence"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Get returns the cached evidence for an image key. Expired and
// unreadable entries are treated as misses; expired files are removed.
func (s *DiskStore) Get(key string) (*model.Evidence, bool) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}
	if entry.Evidence == nil {
		return nil, false
	}

	return entry.Evidence, true
}

// Set stores evidence under an image key. A zero TTL uses the store's
// default.
func (s *DiskStore) Set(key string, ev *model.Evidence, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	entry := diskEntry{
		Evidence:  ev,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes one entry
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes the whole cache directory
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path maps an image key to its cache file. Keys are hex digests, so
// they are always safe as file names.
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
