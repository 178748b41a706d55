package fedsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL string
	apiKey  string
	timeout time.Duration

	cacheTTL     time.Duration
	cacheMaxSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBackend points the client at a search backend.
// baseURL is the API root, e.g. "https://search.example.com";
// apiKey may be empty for unauthenticated backends.
func WithBackend(baseURL, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
		c.apiKey = apiKey
	})
}

// WithBackendTimeout sets the per-call HTTP timeout. Default: 10s.
func WithBackendTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithCacheTTL sets how long cached query results stay fresh.
// Default: 2 minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithCacheMaxSize caps the number of cached query results.
// Default: 100.
func WithCacheMaxSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheMaxSize = size
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts, durations
// and cache hits) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
