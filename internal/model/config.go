package model

import "time"

// Config holds the complete runtime configuration. Provider credentials and
// tunables are passed in explicitly at construction time - nothing reads
// ambient global state at call time.
type Config struct {
	Providers   ProvidersConfig   `yaml:"providers"`
	Cache       CacheConfig       `yaml:"cache"`
	Database    DatabaseConfig    `yaml:"database"`
	Research    ResearchConfig    `yaml:"research"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ProvidersConfig configures the external search providers
type ProvidersConfig struct {
	AnswerEngine AnswerEngineConfig `yaml:"answer_engine"`
	NewsIndex    NewsIndexConfig    `yaml:"news_index"`

	// RequestsPerSecond bounds calls per provider (0 disables limiting)
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// AnswerEngineConfig configures the AI answer engine provider.
// An empty APIKey disables the provider; that is not an error.
type AnswerEngineConfig struct {
	Enabled   bool          `yaml:"enabled"`
	APIKey    string        `yaml:"api_key,omitempty"`
	BaseURL   string        `yaml:"base_url,omitempty"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// NewsIndexConfig configures the news index provider.
// An empty APIKey disables the provider; that is not an error.
type NewsIndexConfig struct {
	Enabled  bool          `yaml:"enabled"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
}

// CacheConfig configures the research cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	TTL       time.Duration `yaml:"ttl"`        // Snapshot lifetime (default 24h)
	MemoryTTL time.Duration `yaml:"memory_ttl"` // In-process layer lifetime
}

// DatabaseConfig configures the persistence store
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ResearchConfig tunes aggregation behavior
type ResearchConfig struct {
	MaxResults         int `yaml:"max_results"`         // Results returned per search
	CorroborationBoost int `yaml:"corroboration_boost"` // Score bump on duplicate URLs
	MaxClaims          int `yaml:"max_claims"`          // Claims returned per extraction
}

// ConcurrencyConfig tunes worker counts
type ConcurrencyConfig struct {
	Workers       int `yaml:"workers"`        // Batch verification workers
	VerifyWorkers int `yaml:"verify_workers"` // Concurrent claim checks per batch
}

// OutputConfig tunes CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			AnswerEngine: AnswerEngineConfig{
				Enabled:   true,
				Model:     "gpt-4o-mini",
				Timeout:   30 * time.Second,
				MaxTokens: 1000,
			},
			NewsIndex: NewsIndexConfig{
				Enabled:  true,
				Endpoint: "https://newsapi.org/v2/everything",
				Timeout:  10 * time.Second,
				PageSize: 20,
			},
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			TTL:       24 * time.Hour,
			MemoryTTL: 10 * time.Minute,
		},
		Database: DatabaseConfig{
			Path: "veridex.db",
		},
		Research: ResearchConfig{
			MaxResults:         15,
			CorroborationBoost: 10,
			MaxClaims:          10,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			VerifyWorkers: 3,
		},
		Output: OutputConfig{},
	}
}
