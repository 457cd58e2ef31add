package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/labelscope/labelscope/internal/model"
)

// MemoryStore keeps OCR results in process memory. Evidence is stored by
// reference; callers must not mutate what they get back.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory OCR result store
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached evidence for an image key
func (s *MemoryStore) Get(key string) (*model.Evidence, bool) {
	if val, found := s.cache.Get(key); found {
		return val.(*model.Evidence), true
	}
	return nil, false
}

// Set stores evidence under an image key
func (s *MemoryStore) Set(key string, ev *model.Evidence, ttl time.Duration) error {
	s.cache.Set(key, ev, ttl)
	return nil
}

// Delete removes one entry
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all entries
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
