// Package backend defines the contract to the remote search service:
// one search call and one schema call per collection, with the minimal
// wire shapes the federated engine depends on.
package backend

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

// Params is the wire shape of a single-collection search call.
type Params struct {
	Query                   string   `json:"q"`
	QueryBy                 []string `json:"query_by,omitempty"`
	FilterBy                string   `json:"filter_by,omitempty"`
	SortBy                  string   `json:"sort_by,omitempty"`
	PerPage                 int      `json:"per_page,omitempty"`
	FacetBy                 []string `json:"facet_by,omitempty"`
	IncludeFields           []string `json:"include_fields,omitempty"`
	ExcludeFields           []string `json:"exclude_fields,omitempty"`
	HighlightStartTag       string   `json:"highlight_start_tag,omitempty"`
	HighlightEndTag         string   `json:"highlight_end_tag,omitempty"`
	HighlightAffixNumTokens int      `json:"highlight_affix_num_tokens,omitempty"`
}

// Highlight is one highlighted fragment as returned by the backend.
type Highlight struct {
	Field         string   `json:"field"`
	Snippet       string   `json:"snippet,omitempty"`
	MatchedTokens []string `json:"matched_tokens,omitempty"`
}

// Hit is one matched document as returned by the backend.
type Hit struct {
	Document       map[string]any `json:"document"`
	TextMatch      *float64       `json:"text_match,omitempty"`
	VectorDistance *float64       `json:"vector_distance,omitempty"`
	GeoDistance    *float64       `json:"geo_distance,omitempty"`
	Highlights     []Highlight    `json:"highlights,omitempty"`
}

// Score returns the hit's raw relevance signal, falling back through the
// available fields: text match, vector distance, geo distance, then 1.
func (h *Hit) Score() float64 {
	switch {
	case h.TextMatch != nil:
		return *h.TextMatch
	case h.VectorDistance != nil:
		return *h.VectorDistance
	case h.GeoDistance != nil:
		return *h.GeoDistance
	default:
		return 1
	}
}

// FacetValue is one facet bucket.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetCount holds facet buckets for one field.
type FacetCount struct {
	FieldName string       `json:"field_name"`
	Counts    []FacetValue `json:"counts"`
}

// Response is one collection's search response. Hit order is the backend's
// rank order and is never reordered here.
type Response struct {
	Hits        []Hit        `json:"hits"`
	Found       int          `json:"found"`
	FacetCounts []FacetCount `json:"facet_counts,omitempty"`
}

// Searcher is the remote search backend.
type Searcher interface {
	Search(ctx context.Context, collection string, params Params) (Response, error)
	Schema(ctx context.Context, collection string) (schema.Schema, error)
}
