package cache

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

// Searcher caches successful single-collection search calls in a Store.
// Failed fetches propagate to the caller and are never cached; schema
// calls pass through untouched.
type Searcher struct {
	inner      backend.Searcher
	store      Store
	cacheTotal *prometheus.CounterVec
}

// Compile-time check: Searcher implements backend.Searcher.
var _ backend.Searcher = (*Searcher)(nil)

// NewSearcher creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"); nil disables it.
func NewSearcher(inner backend.Searcher, store Store, cacheTotal *prometheus.CounterVec) *Searcher {
	return &Searcher{inner: inner, store: store, cacheTotal: cacheTotal}
}

// Search returns a cached response or calls the backend and caches the result.
func (s *Searcher) Search(
	ctx context.Context, collection string, params backend.Params,
) (backend.Response, error) {
	key := Key(collection, params)

	if resp, ok := s.store.Get(ctx, key); ok {
		s.inc("hit")
		return resp, nil
	}
	s.inc("miss")

	resp, err := s.inner.Search(ctx, collection, params)
	if err != nil {
		return backend.Response{}, fmt.Errorf("search %q: %w", collection, err)
	}

	s.store.Put(ctx, key, resp)
	return resp, nil
}

// Schema passes through to the backend; schema memoization lives in the
// schema repository, not here.
func (s *Searcher) Schema(ctx context.Context, collection string) (schema.Schema, error) {
	sch, err := s.inner.Schema(ctx, collection)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("schema %q: %w", collection, err)
	}
	return sch, nil
}

func (s *Searcher) inc(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}
