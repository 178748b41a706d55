package federated

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

// Searcher executes one collection's search against the backend.
type Searcher interface {
	Search(ctx context.Context, collection string, params backend.Params) (backend.Response, error)
}

// SchemaReader resolves a collection's schema for parameter inference.
type SchemaReader interface {
	Get(ctx context.Context, collection string) (schema.Schema, error)
}
