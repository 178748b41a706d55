// Package federated orchestrates a shared query across several collections:
// concurrent fan-out, per-collection score normalization, merge under the
// requested strategy and assembly of the result views.
package federated

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/response"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/resultmode"
)

// Service runs federated searches.
type Service struct {
	search  Searcher
	schemas SchemaReader
}

// NewService creates the federated search service.
func NewService(search Searcher, schemas SchemaReader) *Service {
	return &Service{search: search, schemas: schemas}
}

// outcome is one collection's fan-out result. Exactly one of resp/err is
// meaningful; col is always set.
type outcome struct {
	col     request.Collection
	resp    backend.Response
	elapsed time.Duration
	err     error
}

// SearchAll fans the request out to every collection, waits for all of
// them to settle and assembles the merged response. A failing collection
// is reported in Errors and excluded from every view; the call itself
// fails only when the request is invalid.
func (s *Service) SearchAll(ctx context.Context, req request.Request) (response.Response, error) {
	cols := req.Collections()
	if len(cols) == 0 {
		return response.Response{}, domain.ErrNoCollections
	}

	start := time.Now()
	outcomes := s.fanOut(ctx, req, cols)

	resp := response.Response{
		Query:      req.Query(),
		Strategy:   req.Strategy(),
		Mode:       req.Mode(),
		Found:      make(map[string]int),
		Included:   make(map[string]int),
		SearchTime: make(map[string]time.Duration),
	}

	var ok []outcome
	for _, o := range outcomes {
		if o.err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[o.col.Name()] = o.err.Error()
			continue
		}
		ok = append(ok, o)
		resp.Found[o.col.Name()] = o.resp.Found
		resp.SearchTime[o.col.Name()] = o.elapsed
		if o.col.CollectFacets() && len(o.resp.FacetCounts) > 0 {
			if resp.Facets == nil {
				resp.Facets = make(map[string][]response.Facet)
			}
			resp.Facets[o.col.Name()] = convertFacets(o.resp.FacetCounts)
		}
	}

	hits := collectHits(req, ok)
	merged := mergeHits(req.Strategy(), cols, hits)

	mode := req.Mode()
	if mode.WantsInterleaved() {
		view := merged
		if len(view) > req.GlobalLimit() {
			view = view[:req.GlobalLimit()]
		}
		resp.Hits = view
	}
	if mode.WantsGrouped() {
		resp.HitsByCollection = groupByCollection(hits)
	}

	s.countIncluded(&resp, ok)

	resp.Took = time.Since(start)
	return resp, nil
}

// fanOut runs every collection search concurrently and waits for all of
// them. No early cancellation: a slow collection never hides a fast one.
func (s *Service) fanOut(
	ctx context.Context, req request.Request, cols []request.Collection,
) []outcome {
	outcomes := make([]outcome, len(cols))

	var wg sync.WaitGroup
	for i := range cols {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = s.searchOne(ctx, req, cols[i])
		}(i)
	}
	wg.Wait()

	return outcomes
}

// searchOne resolves effective parameters and executes one collection search.
func (s *Service) searchOne(
	ctx context.Context, req request.Request, col request.Collection,
) outcome {
	o := outcome{col: col}

	params, err := s.buildParams(ctx, req, col)
	if err != nil {
		o.err = err
		return o
	}

	begin := time.Now()
	resp, err := s.search.Search(ctx, col.Name(), params)
	o.elapsed = time.Since(begin)
	if err != nil {
		o.err = err
		return o
	}
	o.resp = resp
	return o
}

// buildParams combines caller-supplied parameters with schema-inferred
// defaults. The schema is fetched only when something needs inferring.
func (s *Service) buildParams(
	ctx context.Context, req request.Request, col request.Collection,
) (backend.Params, error) {
	params := backend.Params{
		Query:         req.Query(),
		QueryBy:       col.QueryBy(),
		FilterBy:      col.FilterBy(),
		SortBy:        col.SortBy(),
		PerPage:       col.Limit(),
		IncludeFields: col.IncludeFields(),
		ExcludeFields: col.ExcludeFields(),
	}
	if col.CollectFacets() {
		params.FacetBy = col.FacetBy()
	}
	if hl := req.Highlight(); hl != nil {
		params.HighlightStartTag = hl.StartTag
		params.HighlightEndTag = hl.EndTag
		params.HighlightAffixNumTokens = hl.AffixTokens
	}

	if len(params.QueryBy) > 0 && params.SortBy != "" {
		return params, nil
	}

	sch, err := s.schemas.Get(ctx, col.Name())
	if err != nil {
		return backend.Params{}, err
	}
	if len(params.QueryBy) == 0 {
		params.QueryBy = sch.QueryFields()
		if len(params.QueryBy) == 0 {
			return backend.Params{}, fmt.Errorf("collection %q has no searchable fields", col.Name())
		}
	}
	if params.SortBy == "" {
		params.SortBy = sch.DefaultSort()
	}
	return params, nil
}

// countIncluded records how many hits each successful collection contributed
// to the authoritative view: the interleaved list for interleaved mode, the
// grouped view otherwise. Every successful collection gets an entry, zero
// included.
func (s *Service) countIncluded(resp *response.Response, ok []outcome) {
	for _, o := range ok {
		resp.Included[o.col.Name()] = 0
	}

	var view []hit.Hit
	if resp.Mode == resultmode.Interleaved {
		view = resp.Hits
	} else {
		for _, hs := range resp.HitsByCollection {
			view = append(view, hs...)
		}
	}
	for i := range view {
		resp.Included[view[i].Collection()]++
	}
}

func convertFacets(counts []backend.FacetCount) []response.Facet {
	facets := make([]response.Facet, 0, len(counts))
	for _, fc := range counts {
		f := response.Facet{Field: fc.FieldName, Counts: make([]response.FacetValue, 0, len(fc.Counts))}
		for _, v := range fc.Counts {
			f.Counts = append(f.Counts, response.FacetValue{Value: v.Value, Count: v.Count})
		}
		facets = append(facets, f)
	}
	return facets
}
