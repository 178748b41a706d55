package fedsearch

import "time"

// MergeStrategy selects how per-collection result lists combine into the
// interleaved view.
type MergeStrategy string

// Merge strategies.
const (
	// StrategyRelevance orders hits by merged score, highest first.
	StrategyRelevance MergeStrategy = "relevance"
	// StrategyRoundRobin alternates one hit per collection per round.
	StrategyRoundRobin MergeStrategy = "round_robin"
	// StrategyCollectionOrder concatenates collections in request order.
	StrategyCollectionOrder MergeStrategy = "collection_order"
)

// ResultMode selects which result views the response carries.
type ResultMode string

// Result modes.
const (
	ModeInterleaved   ResultMode = "interleaved"
	ModePerCollection ResultMode = "per_collection"
	ModeBoth          ResultMode = "both"
)

// CollectionConfig configures one collection of a federated search.
// Name is required; everything else has a sensible default.
type CollectionConfig struct {
	// Name is the backend collection identifier.
	Name string
	// Namespace labels this collection's hits in the response.
	// Defaults to Name.
	Namespace string
	// QueryBy names the fields to search. Empty means infer the indexed
	// textual fields from the collection schema.
	QueryBy []string
	// SortBy is a backend sort expression. Empty means infer from the
	// schema's default sorting field.
	SortBy string
	// FilterBy is a backend filter expression applied to this collection.
	FilterBy string
	// FacetBy names the fields to facet on when CollectFacets is set.
	FacetBy []string
	// CollectFacets requests facet counts for FacetBy fields.
	CollectFacets bool
	// Limit caps this collection's hits. Defaults to 20, max 250.
	Limit int
	// Weight scales this collection's normalized scores during merging.
	// Defaults to 1.0; must not be negative.
	Weight float64
	// IncludeFields restricts returned document fields.
	IncludeFields []string
	// ExcludeFields drops document fields from results.
	ExcludeFields []string
}

// HighlightConfig sets the markup for highlighted snippets.
type HighlightConfig struct {
	StartTag    string
	EndTag      string
	AffixTokens int
}

// SearchRequest is a federated search across one or more collections.
type SearchRequest struct {
	// Query is the free-text query shared by every collection.
	Query string
	// Collections lists the collections to search, in merge order.
	Collections []CollectionConfig
	// Strategy selects the interleaving order. Defaults to relevance.
	Strategy MergeStrategy
	// Mode selects the result views. Defaults to interleaved.
	Mode ResultMode
	// Limit caps the interleaved view. Defaults to 50, max 500.
	Limit int
	// NormalizeScores rescales each collection's raw scores onto [0,1]
	// before weighting, making scores comparable across collections.
	NormalizeScores bool
	// Highlight configures snippet markup. Nil leaves backend defaults.
	Highlight *HighlightConfig
}

// Highlight is one highlighted fragment of a matched document field.
type Highlight struct {
	Field         string
	Snippet       string
	MatchedTokens []string
}

// Hit is one matched document with its cross-collection scoring metadata.
type Hit struct {
	// Collection is the backend collection this hit came from.
	Collection string
	// Namespace is the caller-supplied label for the collection.
	Namespace string
	// Rank is the 1-based position within the originating collection.
	Rank int
	// Document is the matched document.
	Document map[string]any
	// Highlights are the highlighted fragments, when requested.
	Highlights []Highlight
	// RawScore is the backend's relevance signal.
	RawScore float64
	// NormalizedScore is RawScore rescaled onto [0,1] per collection,
	// or RawScore unchanged when normalization was off.
	NormalizedScore float64
	// MergedScore is NormalizedScore times the collection weight.
	MergedScore float64
	// Weight is the collection weight applied to this hit.
	Weight float64
}

// FacetCount is one facet bucket.
type FacetCount struct {
	Value string
	Count int
}

// Facet holds facet buckets for one field.
type Facet struct {
	Field  string
	Counts []FacetCount
}

// SearchResponse is the merged result of a federated search.
// Hits carries the interleaved view (nil for per_collection mode);
// HitsByCollection carries the grouped view (nil for interleaved mode).
// Per-collection maps are keyed by collection name. A collection listed
// in ErrorsByCollection contributed no hits.
type SearchResponse struct {
	Query    string
	Strategy MergeStrategy
	Mode     ResultMode

	Hits             []Hit
	HitsByCollection map[string][]Hit

	FoundByCollection      map[string]int
	IncludedByCollection   map[string]int
	SearchTimeByCollection map[string]time.Duration
	FacetsByCollection     map[string][]Facet
	ErrorsByCollection     map[string]string

	Took time.Duration
}

// CacheStats describes the query cache.
type CacheStats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
}
