package llm

import (
	"fmt"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// NewProvider creates a new LLM provider based on configuration. An empty
// provider name means summaries are disabled and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}
