// Package cache memoizes single-collection search responses, keyed by
// collection plus canonicalized parameters, with time-based expiry and
// capacity-based eviction.
package cache

import (
	"context"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
)

// Default cache bounds.
const (
	DefaultTTL     = 2 * time.Minute
	DefaultMaxSize = 100
)

// Stats describes the current state of a query cache.
type Stats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
}

// Store is a query-cache storage tier. Implementations never return
// errors: a failed read or write degrades to a miss.
type Store interface {
	Get(ctx context.Context, key string) (backend.Response, bool)
	Put(ctx context.Context, key string, resp backend.Response)
	Clear(ctx context.Context)
	Stats(ctx context.Context) Stats
}
