// Package cache stores OCR results so re-verifying the same label image
// never pays for a second vision call. Entries are keyed by the content
// hash of the preprocessed image bytes: any pixel change produces a new
// key, so stale text can never be served for an edited image.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/labelscope/labelscope/internal/model"
)

// Store is an OCR result cache layer
type Store interface {
	// Get returns the cached evidence for an image key
	Get(key string) (*model.Evidence, bool)

	// Set stores evidence under an image key with the given TTL
	Set(key string, ev *model.Evidence, ttl time.Duration) error

	// Delete removes one entry
	Delete(key string) error

	// Clear removes all entries
	Clear() error
}

// Key derives the cache key for an image: hex sha256 of its bytes.
// Hash the preprocessed bytes, not the upload, so the key reflects what
// was actually sent to OCR.
func Key(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}
