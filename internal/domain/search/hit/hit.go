package hit

// Highlight is one highlighted fragment of a matched document field.
type Highlight struct {
	Field         string
	Snippet       string
	MatchedTokens []string
}

// Hit is one matched document annotated with its cross-collection
// scoring metadata. Created once during aggregation, never mutated.
type Hit struct {
	collection string
	namespace  string
	rank       int
	document   map[string]any
	highlights []Highlight
	rawScore   float64
	normScore  float64
	merged     float64
	weight     float64
}

// New creates a merged hit. rank is 1-based within the originating collection.
func New(
	collection, namespace string, rank int,
	document map[string]any, highlights []Highlight,
	rawScore, normScore, merged, weight float64,
) Hit {
	return Hit{
		collection: collection,
		namespace:  namespace,
		rank:       rank,
		document:   document,
		highlights: highlights,
		rawScore:   rawScore,
		normScore:  normScore,
		merged:     merged,
		weight:     weight,
	}
}

// Collection returns the backend collection identifier.
func (h *Hit) Collection() string { return h.collection }

// Namespace returns the caller-supplied role label.
func (h *Hit) Namespace() string { return h.namespace }

// Rank returns the 1-based position within the originating collection.
func (h *Hit) Rank() int { return h.rank }

// Document returns the schema-less document payload.
func (h *Hit) Document() map[string]any { return h.document }

// Highlights returns the highlighted fragments.
func (h *Hit) Highlights() []Highlight { return h.highlights }

// RawScore returns the backend's relevance signal.
func (h *Hit) RawScore() float64 { return h.rawScore }

// NormalizedScore returns the score rescaled onto [0,1] (the raw score
// when normalization was not requested).
func (h *Hit) NormalizedScore() float64 { return h.normScore }

// MergedScore returns the normalized score times the collection weight.
func (h *Hit) MergedScore() float64 { return h.merged }

// Weight returns the collection weight used for this hit.
func (h *Hit) Weight() float64 { return h.weight }
