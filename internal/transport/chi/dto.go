package chi

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/response"
	"github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// errorCode identifies an API error class on the wire.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeNoCollections      errorCode = "no_collections"
	codeCollectionNotFound errorCode = "collection_not_found"
	codeBackendAuth        errorCode = "backend_unauthorized"
	codeBackendUnavailable errorCode = "backend_unavailable"
	codeInternalError      errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type collectionDTO struct {
	Name          string   `json:"name"`
	Namespace     string   `json:"namespace,omitempty"`
	QueryBy       []string `json:"query_by,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	FilterBy      string   `json:"filter_by,omitempty"`
	FacetBy       []string `json:"facet_by,omitempty"`
	CollectFacets bool     `json:"collect_facets,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Weight        float64  `json:"weight,omitempty"`
	IncludeFields []string `json:"include_fields,omitempty"`
	ExcludeFields []string `json:"exclude_fields,omitempty"`
}

type highlightConfigDTO struct {
	StartTag    string `json:"start_tag,omitempty"`
	EndTag      string `json:"end_tag,omitempty"`
	AffixTokens int    `json:"affix_tokens,omitempty"`
}

type searchRequestDTO struct {
	Query           string              `json:"query"`
	Collections     []collectionDTO     `json:"collections"`
	Strategy        string              `json:"strategy,omitempty"`
	Mode            string              `json:"mode,omitempty"`
	Limit           int                 `json:"limit,omitempty"`
	NormalizeScores bool                `json:"normalize_scores,omitempty"`
	Highlight       *highlightConfigDTO `json:"highlight,omitempty"`
}

type highlightDTO struct {
	Field         string   `json:"field"`
	Snippet       string   `json:"snippet,omitempty"`
	MatchedTokens []string `json:"matched_tokens,omitempty"`
}

type hitDTO struct {
	Collection      string         `json:"collection"`
	Namespace       string         `json:"namespace"`
	Rank            int            `json:"rank"`
	Document        map[string]any `json:"document"`
	Highlights      []highlightDTO `json:"highlights,omitempty"`
	RawScore        float64        `json:"raw_score"`
	NormalizedScore float64        `json:"normalized_score"`
	MergedScore     float64        `json:"merged_score"`
	Weight          float64        `json:"weight"`
}

type facetValueDTO struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facetDTO struct {
	Field  string          `json:"field"`
	Counts []facetValueDTO `json:"counts"`
}

type searchResponseDTO struct {
	Query    string `json:"query"`
	Strategy string `json:"strategy"`
	Mode     string `json:"mode"`

	Hits             []hitDTO            `json:"hits,omitempty"`
	HitsByCollection map[string][]hitDTO `json:"hits_by_collection,omitempty"`

	FoundByCollection        map[string]int        `json:"found_by_collection"`
	IncludedByCollection     map[string]int        `json:"included_by_collection"`
	SearchTimeMsByCollection map[string]int64      `json:"search_time_ms_by_collection"`
	FacetsByCollection       map[string][]facetDTO `json:"facets_by_collection,omitempty"`
	ErrorsByCollection       map[string]string     `json:"errors_by_collection,omitempty"`

	TookMs int64 `json:"took_ms"`
}

type cacheStatsDTO struct {
	Size    int   `json:"size"`
	MaxSize int   `json:"max_size"`
	TTLSec  int64 `json:"ttl_sec"`
}

type healthResponseDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func collectionFromDTO(dto collectionDTO) request.CollectionConfig {
	return request.CollectionConfig{
		Name:          dto.Name,
		Namespace:     dto.Namespace,
		QueryBy:       dto.QueryBy,
		SortBy:        dto.SortBy,
		FilterBy:      dto.FilterBy,
		FacetBy:       dto.FacetBy,
		CollectFacets: dto.CollectFacets,
		Limit:         dto.Limit,
		Weight:        dto.Weight,
		IncludeFields: dto.IncludeFields,
		ExcludeFields: dto.ExcludeFields,
	}
}

func hitsToDTO(hits []hit.Hit) []hitDTO {
	if hits == nil {
		return nil
	}
	out := make([]hitDTO, 0, len(hits))
	for i := range hits {
		h := &hits[i]
		var hls []highlightDTO
		for _, dh := range h.Highlights() {
			hls = append(hls, highlightDTO{
				Field:         dh.Field,
				Snippet:       dh.Snippet,
				MatchedTokens: dh.MatchedTokens,
			})
		}
		out = append(out, hitDTO{
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

func responseToDTO(resp response.Response) searchResponseDTO {
	dto := searchResponseDTO{
		Query:                resp.Query,
		Strategy:             string(resp.Strategy),
		Mode:                 string(resp.Mode),
		Hits:                 hitsToDTO(resp.Hits),
		FoundByCollection:    resp.Found,
		IncludedByCollection: resp.Included,
		ErrorsByCollection:   resp.Errors,
		TookMs:               resp.Took.Milliseconds(),
	}

	dto.SearchTimeMsByCollection = make(map[string]int64, len(resp.SearchTime))
	for name, d := range resp.SearchTime {
		dto.SearchTimeMsByCollection[name] = d.Milliseconds()
	}

	if resp.HitsByCollection != nil {
		dto.HitsByCollection = make(map[string][]hitDTO, len(resp.HitsByCollection))
		for name, hs := range resp.HitsByCollection {
			dto.HitsByCollection[name] = hitsToDTO(hs)
		}
	}
	if resp.Facets != nil {
		dto.FacetsByCollection = make(map[string][]facetDTO, len(resp.Facets))
		for name, fs := range resp.Facets {
			facets := make([]facetDTO, 0, len(fs))
			for _, f := range fs {
				counts := make([]facetValueDTO, 0, len(f.Counts))
				for _, v := range f.Counts {
					counts = append(counts, facetValueDTO{Value: v.Value, Count: v.Count})
				}
				facets = append(facets, facetDTO{Field: f.Field, Counts: counts})
			}
			dto.FacetsByCollection[name] = facets
		}
	}
	return dto
}

func healthToDTO(r health.Report) healthResponseDTO {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return healthResponseDTO{Status: string(r.Status), Checks: checks}
}

func ttlSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
