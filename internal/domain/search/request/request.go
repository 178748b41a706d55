package request

import (
	"fmt"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/resultmode"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/strategy"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 250
	DefaultGlobal  = 50
	MaxGlobal      = 500
	DefaultWeight  = 1.0
)

// Highlight holds highlighting markup options passed through to the backend.
type Highlight struct {
	StartTag    string
	EndTag      string
	AffixTokens int
}

// CollectionConfig carries the caller-supplied parameters for one collection.
type CollectionConfig struct {
	Name          string
	Namespace     string
	QueryBy       []string
	SortBy        string
	FilterBy      string
	FacetBy       []string
	CollectFacets bool
	Limit         int
	Weight        float64
	IncludeFields []string
	ExcludeFields []string
}

// Collection is a validated, immutable per-collection configuration.
type Collection struct {
	cfg CollectionConfig
}

// NewCollection validates and normalizes one collection's configuration.
// Defaults: namespace=name, limit=20, weight=1.0.
func NewCollection(cfg CollectionConfig) (Collection, error) {
	if cfg.Name == "" {
		return Collection{}, fmt.Errorf("collection name is required")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = cfg.Name
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Limit > MaxLimit {
		cfg.Limit = MaxLimit
	}
	if cfg.Weight < 0 {
		return Collection{}, fmt.Errorf("collection %q: weight must not be negative", cfg.Name)
	}
	if cfg.Weight == 0 {
		cfg.Weight = DefaultWeight
	}
	if cfg.CollectFacets && len(cfg.FacetBy) == 0 {
		return Collection{}, fmt.Errorf("collection %q: facet collection requested without facet fields", cfg.Name)
	}
	return Collection{cfg: cfg}, nil
}

// Name returns the backend collection identifier.
func (c *Collection) Name() string { return c.cfg.Name }

// Namespace returns the caller-supplied role label (defaults to the name).
func (c *Collection) Namespace() string { return c.cfg.Namespace }

// QueryBy returns the explicit query fields (empty means infer from schema).
func (c *Collection) QueryBy() []string { return c.cfg.QueryBy }

// SortBy returns the explicit sort expression (empty means infer from schema).
func (c *Collection) SortBy() string { return c.cfg.SortBy }

// FilterBy returns the filter expression.
func (c *Collection) FilterBy() string { return c.cfg.FilterBy }

// FacetBy returns the facet field list.
func (c *Collection) FacetBy() []string { return c.cfg.FacetBy }

// CollectFacets reports whether facet counts were requested.
func (c *Collection) CollectFacets() bool { return c.cfg.CollectFacets }

// Limit returns the maximum hits to take from this collection.
func (c *Collection) Limit() int { return c.cfg.Limit }

// Weight returns the relevance weight applied after normalization.
func (c *Collection) Weight() float64 { return c.cfg.Weight }

// IncludeFields returns the field-projection include list.
func (c *Collection) IncludeFields() []string { return c.cfg.IncludeFields }

// ExcludeFields returns the field-projection exclude list.
func (c *Collection) ExcludeFields() []string { return c.cfg.ExcludeFields }

// Request is a validated federated search query.
type Request struct {
	query       string
	collections []Collection
	strategy    strategy.Strategy
	mode        resultmode.Mode
	globalLimit int
	normalize   bool
	highlight   *Highlight
}

// New validates and normalizes a federated search request.
// Defaults: strategy=relevance, mode=interleaved, globalLimit=50.
func New(
	query string,
	collections []Collection,
	st strategy.Strategy,
	m resultmode.Mode,
	globalLimit int,
	normalize bool,
	highlight *Highlight,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if len(collections) == 0 {
		return Request{}, domain.ErrNoCollections
	}
	if st == "" {
		st = strategy.Relevance
	}
	if !st.IsValid() {
		return Request{}, fmt.Errorf("invalid merge strategy: %q", st)
	}
	if m == "" {
		m = resultmode.Interleaved
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid result mode: %q", m)
	}
	if globalLimit <= 0 {
		globalLimit = DefaultGlobal
	}
	if globalLimit > MaxGlobal {
		globalLimit = MaxGlobal
	}

	return Request{
		query:       query,
		collections: collections,
		strategy:    st,
		mode:        m,
		globalLimit: globalLimit,
		normalize:   normalize,
		highlight:   highlight,
	}, nil
}

// Query returns the shared free-text query.
func (r *Request) Query() string { return r.query }

// Collections returns the ordered per-collection configurations.
func (r *Request) Collections() []Collection { return r.collections }

// Strategy returns the merge strategy.
func (r *Request) Strategy() strategy.Strategy { return r.strategy }

// Mode returns the result mode.
func (r *Request) Mode() resultmode.Mode { return r.mode }

// GlobalLimit returns the cap for the interleaved view.
func (r *Request) GlobalLimit() int { return r.globalLimit }

// Normalize reports whether raw scores are rescaled onto [0,1] per collection.
func (r *Request) Normalize() bool { return r.normalize }

// Highlight returns the highlighting options (nil when not requested).
func (r *Request) Highlight() *Highlight { return r.highlight }
