package model

import "time"

// Config holds the complete labelscope configuration. Values are resolved
// through viper (flags > env > config file > defaults) and handed to the
// layers that need them; the verification engine itself only sees the
// matching strategy.
type Config struct {
	Matching    MatchingConfig    `yaml:"matching" mapstructure:"matching"`
	OCR         OCRConfig         `yaml:"ocr" mapstructure:"ocr"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// MatchingConfig selects the similarity strategy for text comparison
type MatchingConfig struct {
	// Strategy is "fuzzy" (token-sort levenshtein ratio) or "exact".
	// Exact degrades match quality and logs a warning when selected.
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
}

// OCRConfig configures the vision endpoint used to read label images
type OCRConfig struct {
	Endpoint     string        `yaml:"endpoint" mapstructure:"endpoint"`
	APIKey       string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxImageSide int           `yaml:"max_image_side" mapstructure:"max_image_side"` // pixels, longest side after preprocessing
	MaxBodySize  int64         `yaml:"max_body_size" mapstructure:"max_body_size"`   // bytes read from the OCR response

	// Proxy settings; empty values fall back to the environment
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig configures the OCR result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig governs batch processing
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LLMConfig configures the optional report summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json" or "markdown"
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Matching: MatchingConfig{
			Strategy: "fuzzy",
		},
		OCR: OCRConfig{
			Timeout:      30 * time.Second,
			MaxImageSide: 2048,
			MaxBodySize:  10 << 20,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.labelscope/cache at startup
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             1,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			Format: "json",
			Dir:    "reports",
		},
	}
}
