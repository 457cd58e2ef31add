package cache

import (
	"time"

	"github.com/labelscope/labelscope/internal/model"
)

// LayeredStore fronts the disk store with a memory store: repeated
// verifications of the same image in one run never touch the disk.
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore builds the standard memory+disk OCR cache
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk, promoting disk hits to memory
func (s *LayeredStore) Get(key string) (*model.Evidence, bool) {
	if ev, found := s.memory.Get(key); found {
		return ev, true
	}

	if ev, found := s.disk.Get(key); found {
		_ = s.memory.Set(key, ev, 0) // default TTL
		return ev, true
	}

	return nil, false
}

// Set writes through to both layers
func (s *LayeredStore) Set(key string, ev *model.Evidence, ttl time.Duration) error {
	if err := s.memory.Set(key, ev, ttl); err != nil {
		return err
	}
	return s.disk.Set(key, ev, ttl)
}

// Delete removes an entry from both layers
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	return s.disk.Delete(key)
}

// Clear empties both layers
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	return s.disk.Clear()
}
