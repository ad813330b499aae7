package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Summary lookup service
	WikiBaseURL   string `env:"WIKI_BASE_URL" envDefault:"https://en.wikipedia.org/api/rest_v1"`
	WikiUserAgent string `env:"WIKI_USER_AGENT" envDefault:"research-agents/1.0 (research pipeline)"`
	WikiTimeout   int    `env:"WIKI_TIMEOUT_SECONDS" envDefault:"10"`

	// Difficulty thresholds are tunable without touching pipeline logic.
	BeginnerMin int `env:"ANALYZER_BEGINNER_MIN" envDefault:"1"`
	AdvancedMin int `env:"ANALYZER_ADVANCED_MIN" envDefault:"2"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"noop"` // "redis" or "noop"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"` // seconds

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"noop"` // "postgres" or "noop"
	DBURL         string `env:"DB_URL"`

	// Queue
	QueueProvider string `env:"QUEUE_PROVIDER" envDefault:"noop"` // "nats" or "noop"
	QueueURL      string `env:"QUEUE_URL"`

	// History
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"20"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
