package federated

import (
	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
)

// collectHits converts every successful collection's raw hits into domain
// hits with scoring metadata, preserving request order across collections
// and backend rank order within each.
func collectHits(req request.Request, ok []outcome) []hit.Hit {
	var hits []hit.Hit
	for _, o := range ok {
		hits = append(hits, normalizeCollection(req, o)...)
	}
	return hits
}

// normalizeCollection scales one collection's raw scores onto [0,1] using
// the collection's own min and max, then applies the collection weight.
// When every hit ties, the range collapses and all normalized scores are 0.
// Without normalization the raw score feeds the weight directly.
func normalizeCollection(req request.Request, o outcome) []hit.Hit {
	raw := o.resp.Hits
	if len(raw) > o.col.Limit() {
		raw = raw[:o.col.Limit()]
	}
	if len(raw) == 0 {
		return nil
	}

	minScore, maxScore := raw[0].Score(), raw[0].Score()
	for i := 1; i < len(raw); i++ {
		s := raw[i].Score()
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}
	scoreRange := maxScore - minScore
	if scoreRange == 0 {
		scoreRange = 1
	}

	hits := make([]hit.Hit, 0, len(raw))
	for i := range raw {
		rawScore := raw[i].Score()
		normScore := rawScore
		if req.Normalize() {
			normScore = (rawScore - minScore) / scoreRange
		}
		hits = append(hits, hit.New(
			o.col.Name(), o.col.Namespace(), i+1,
			raw[i].Document, convertHighlights(raw[i].Highlights),
			rawScore, normScore, normScore*o.col.Weight(), o.col.Weight(),
		))
	}
	return hits
}

func convertHighlights(hls []backend.Highlight) []hit.Highlight {
	if len(hls) == 0 {
		return nil
	}
	out := make([]hit.Highlight, 0, len(hls))
	for _, h := range hls {
		out = append(out, hit.Highlight{
			Field:         h.Field,
			Snippet:       h.Snippet,
			MatchedTokens: h.MatchedTokens,
		})
	}
	return out
}
