// Package ocr turns label images into text evidence. A Provider reads an
// image and returns the recognized text with per-block positions; the
// verification engine never talks to a vision API directly.
package ocr

import (
	"context"
	"fmt"

	"github.com/labelscope/labelscope/internal/model"
)

// Provider defines the interface for OCR backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Recognize extracts text evidence from image bytes
	Recognize(ctx context.Context, image []byte) (*model.Evidence, error)
}

// NewProvider creates an OCR provider from configuration
func NewProvider(cfg model.OCRConfig) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("OCR endpoint is required (set ocr.endpoint, or supply pre-extracted evidence)")
	}
	return NewVisionClient(cfg), nil
}
