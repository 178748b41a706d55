package response

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/resultmode"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/strategy"
)

// FacetValue is one facet bucket.
type FacetValue struct {
	Value string
	Count int
}

// Facet holds facet counts for one field.
type Facet struct {
	Field  string
	Counts []FacetValue
}

// Response is the assembled federated search result.
// Hits is the interleaved view (nil when mode=per_collection);
// HitsByCollection is the grouped view (nil when mode=interleaved).
// Maps are keyed by backend collection identifier. A collection listed in
// Errors contributes no hits to either view.
type Response struct {
	Query    string
	Strategy strategy.Strategy
	Mode     resultmode.Mode

	Hits             []hit.Hit
	HitsByCollection map[string][]hit.Hit

	Found      map[string]int
	Included   map[string]int
	SearchTime map[string]time.Duration
	Facets     map[string][]Facet
	Errors     map[string]string

	Took time.Duration
}
