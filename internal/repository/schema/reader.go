// Package schema memoizes collection schemas fetched from the backend.
// Schemas change rarely, so a successful fetch is kept for the lifetime
// of the reader until Clear is called.
package schema

import (
	"context"
	"fmt"
	"sync"

	domschema "github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

// fetcher is the single backend call the reader depends on.
type fetcher interface {
	Schema(ctx context.Context, collection string) (domschema.Schema, error)
}

// Reader resolves collection schemas with permanent memoization of
// successful lookups. Failed lookups are never cached.
type Reader struct {
	fetch fetcher

	mu      sync.Mutex
	schemas map[string]domschema.Schema
}

// NewReader creates a memoizing schema reader over the given backend.
func NewReader(fetch fetcher) *Reader {
	return &Reader{
		fetch:   fetch,
		schemas: make(map[string]domschema.Schema),
	}
}

// Get returns the schema for collection, fetching it on first use.
// Concurrent first lookups of the same collection may both hit the
// backend; the second write wins and both callers get a valid schema.
func (r *Reader) Get(ctx context.Context, collection string) (domschema.Schema, error) {
	r.mu.Lock()
	sch, ok := r.schemas[collection]
	r.mu.Unlock()
	if ok {
		return sch, nil
	}

	sch, err := r.fetch.Schema(ctx, collection)
	if err != nil {
		return domschema.Schema{}, fmt.Errorf("fetch schema %q: %w", collection, err)
	}

	r.mu.Lock()
	r.schemas[collection] = sch
	r.mu.Unlock()

	return sch, nil
}

// Clear drops every memoized schema. The next Get per collection hits
// the backend again.
func (r *Reader) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas = make(map[string]domschema.Schema)
}

// Size returns the number of memoized schemas.
func (r *Reader) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schemas)
}
