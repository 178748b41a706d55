// Package fedsearch is a client for federated search across several
// collections of a remote search backend: one query fans out to every
// collection concurrently, scores are normalized and weighted, and the
// per-collection results merge into a single ranked list.
package fedsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend/httpapi"
	"github.com/kailas-cloud/fedsearch/internal/cache"
	schemarepo "github.com/kailas-cloud/fedsearch/internal/repository/schema"
	"github.com/kailas-cloud/fedsearch/internal/usecase/federated"
)

// Client is the fedsearch entry point. Safe for concurrent use.
type Client struct {
	svc     *federated.Service
	store   cache.Store
	schemas *schemarepo.Reader
	obs     *observer
}

// New creates a Client for the backend configured via options.
// WithBackend is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("fedsearch: backend URL required (use WithBackend)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	api, err := httpapi.New(httpapi.Config{
		BaseURL: cfg.baseURL,
		APIKey:  cfg.apiKey,
		Timeout: cfg.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fedsearch: %w", err)
	}

	store := cache.NewMemory(cfg.cacheTTL, cfg.cacheMaxSize)
	searcher := cache.NewSearcher(api, store, obs.cacheCounter())
	schemas := schemarepo.NewReader(searcher)

	return &Client{
		svc:     federated.NewService(searcher, schemas),
		store:   store,
		schemas: schemas,
		obs:     obs,
	}, nil
}

// SearchAll runs one query across every collection in the request and
// returns the merged response. A collection failure does not fail the
// call; it is reported in ErrorsByCollection. The call errors only when
// the request itself is invalid.
func (c *Client) SearchAll(ctx context.Context, req SearchRequest) (_ *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_all", start, err) }()

	domReq, err := toDomainRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.SearchAll(ctx, domReq)
	if err != nil {
		return nil, fmt.Errorf("search all: %w", err)
	}
	return fromDomainResponse(resp), nil
}

// ClearCache drops every cached query result.
func (c *Client) ClearCache(ctx context.Context) {
	c.store.Clear(ctx)
}

// CacheStats reports the query cache's current state.
func (c *Client) CacheStats(ctx context.Context) CacheStats {
	s := c.store.Stats(ctx)
	return CacheStats{Size: s.Size, MaxSize: s.MaxSize, TTL: s.TTL}
}

// ClearSchemaCache drops every memoized collection schema, forcing the
// next search to re-read schemas from the backend.
func (c *Client) ClearSchemaCache() {
	c.schemas.Clear()
}
