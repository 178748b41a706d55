package cache

import (
	"encoding/json"

	"github.com/kailas-cloud/fedsearch/internal/backend"
)

// Key builds the canonical cache key for a single-collection search call.
// Params are marshalled, round-tripped through a map and marshalled again
// so that fields serialize in sorted name order: two semantically identical
// requests always map to the same key regardless of field order.
func Key(collection string, params backend.Params) string {
	raw, err := json.Marshal(params)
	if err != nil {
		// Params holds only strings, ints and slices; marshalling cannot
		// fail in practice. Fall back to an uncanonicalized key.
		return collection + ":" + params.Query
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return collection + ":" + string(raw)
	}
	canonical, err := json.Marshal(m)
	if err != nil {
		return collection + ":" + string(raw)
	}
	return collection + ":" + string(canonical)
}
