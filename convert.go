package fedsearch

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/response"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/resultmode"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/strategy"
)

// toDomainRequest validates and converts a public request. Validation
// failures wrap ErrInvalidRequest; an empty collection list surfaces
// ErrNoCollections directly.
func toDomainRequest(req SearchRequest) (request.Request, error) {
	cols := make([]request.Collection, 0, len(req.Collections))
	for _, cc := range req.Collections {
		col, err := request.NewCollection(request.CollectionConfig{
			Name:          cc.Name,
			Namespace:     cc.Namespace,
			QueryBy:       cc.QueryBy,
			SortBy:        cc.SortBy,
			FilterBy:      cc.FilterBy,
			FacetBy:       cc.FacetBy,
			CollectFacets: cc.CollectFacets,
			Limit:         cc.Limit,
			Weight:        cc.Weight,
			IncludeFields: cc.IncludeFields,
			ExcludeFields: cc.ExcludeFields,
		})
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		cols = append(cols, col)
	}

	var hl *request.Highlight
	if req.Highlight != nil {
		hl = &request.Highlight{
			StartTag:    req.Highlight.StartTag,
			EndTag:      req.Highlight.EndTag,
			AffixTokens: req.Highlight.AffixTokens,
		}
	}

	domReq, err := request.New(
		req.Query, cols,
		strategy.Strategy(req.Strategy), resultmode.Mode(req.Mode),
		req.Limit, req.NormalizeScores, hl,
	)
	if err != nil {
		if errors.Is(err, domain.ErrNoCollections) {
			return request.Request{}, err
		}
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return domReq, nil
}

func fromDomainResponse(resp response.Response) *SearchResponse {
	out := &SearchResponse{
		Query:                  resp.Query,
		Strategy:               MergeStrategy(resp.Strategy),
		Mode:                   ResultMode(resp.Mode),
		Hits:                   fromDomainHits(resp.Hits),
		FoundByCollection:      resp.Found,
		IncludedByCollection:   resp.Included,
		SearchTimeByCollection: resp.SearchTime,
		ErrorsByCollection:     resp.Errors,
		Took:                   resp.Took,
	}

	if resp.HitsByCollection != nil {
		out.HitsByCollection = make(map[string][]Hit, len(resp.HitsByCollection))
		for name, hs := range resp.HitsByCollection {
			out.HitsByCollection[name] = fromDomainHits(hs)
		}
	}
	if resp.Facets != nil {
		out.FacetsByCollection = make(map[string][]Facet, len(resp.Facets))
		for name, fs := range resp.Facets {
			facets := make([]Facet, 0, len(fs))
			for _, f := range fs {
				counts := make([]FacetCount, 0, len(f.Counts))
				for _, v := range f.Counts {
					counts = append(counts, FacetCount{Value: v.Value, Count: v.Count})
				}
				facets = append(facets, Facet{Field: f.Field, Counts: counts})
			}
			out.FacetsByCollection[name] = facets
		}
	}
	return out
}

func fromDomainHits(hits []hit.Hit) []Hit {
	if hits == nil {
		return nil
	}
	out := make([]Hit, 0, len(hits))
	for i := range hits {
		h := &hits[i]
		var hls []Highlight
		for _, dh := range h.Highlights() {
			hls = append(hls, Highlight{
				Field:         dh.Field,
				Snippet:       dh.Snippet,
				MatchedTokens: dh.MatchedTokens,
			})
		}
		out = append(out, Hit{
			Collection:      h.Collection(),
			Namespace:       h.Namespace(),
			Rank:            h.Rank(),
			Document:        h.Document(),
			Highlights:      hls,
			RawScore:        h.RawScore(),
			NormalizedScore: h.NormalizedScore(),
			MergedScore:     h.MergedScore(),
			Weight:          h.Weight(),
		})
	}
	return out
}
