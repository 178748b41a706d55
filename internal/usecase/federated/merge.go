package federated

import (
	"sort"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/strategy"
)

// mergeHits produces the interleaved view under the requested strategy.
// The input is ordered by request collection order, backend rank within
// each collection; every strategy leaves the input untouched.
func mergeHits(st strategy.Strategy, cols []request.Collection, hits []hit.Hit) []hit.Hit {
	switch st {
	case strategy.RoundRobin:
		return mergeRoundRobin(cols, hits)
	case strategy.CollectionOrder:
		return mergeCollectionOrder(cols, hits)
	default:
		return mergeRelevance(hits)
	}
}

// mergeRelevance orders hits by merged score, highest first. The sort is
// stable, so ties keep collection order then rank order.
func mergeRelevance(hits []hit.Hit) []hit.Hit {
	merged := make([]hit.Hit, len(hits))
	copy(merged, hits)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedScore() > merged[j].MergedScore()
	})
	return merged
}

// mergeRoundRobin interleaves one hit per collection per round, visiting
// collections in request order and skipping exhausted ones.
func mergeRoundRobin(cols []request.Collection, hits []hit.Hit) []hit.Hit {
	groups := groupByCollection(hits)
	order := collectionOrder(cols, groups)

	merged := make([]hit.Hit, 0, len(hits))
	for len(merged) < len(hits) {
		for _, name := range order {
			if len(groups[name]) == 0 {
				continue
			}
			merged = append(merged, groups[name][0])
			groups[name] = groups[name][1:]
		}
	}
	return merged
}

// mergeCollectionOrder concatenates each collection's hits in request order.
func mergeCollectionOrder(cols []request.Collection, hits []hit.Hit) []hit.Hit {
	groups := groupByCollection(hits)
	order := collectionOrder(cols, groups)

	merged := make([]hit.Hit, 0, len(hits))
	for _, name := range order {
		merged = append(merged, groups[name]...)
	}
	return merged
}

// groupByCollection splits hits per collection, preserving rank order.
// Only collections that contributed hits get an entry.
func groupByCollection(hits []hit.Hit) map[string][]hit.Hit {
	groups := make(map[string][]hit.Hit)
	for i := range hits {
		name := hits[i].Collection()
		groups[name] = append(groups[name], hits[i])
	}
	return groups
}

// collectionOrder returns the request-order names of collections present
// in groups.
func collectionOrder(cols []request.Collection, groups map[string][]hit.Hit) []string {
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for i := range cols {
		name := cols[i].Name()
		if _, ok := groups[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	return order
}
