package strategy

// Strategy is the algorithm used to combine per-collection hit lists
// into one ordered view.
type Strategy string

// Merge strategy constants.
const (
	// Relevance orders hits by weighted normalized score, descending.
	Relevance Strategy = "relevance"
	// RoundRobin takes one hit per collection per round, in collection order.
	RoundRobin Strategy = "round_robin"
	// CollectionOrder keeps hits in collection-then-rank order, no interleaving.
	CollectionOrder Strategy = "collection_order"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Relevance || s == RoundRobin || s == CollectionOrder
}
