package metrics

import "github.com/prometheus/client_golang/prometheus"

// Federated search Prometheus metrics.
var (
	FederatedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "federated_requests_total",
			Help:      "Total number of federated search requests",
		},
		[]string{"strategy", "status"},
	)

	FederatedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fedsearch",
			Name:      "federated_request_duration_seconds",
			Help:      "Federated search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"strategy"},
	)

	CollectionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "collection_errors_total",
			Help:      "Per-collection failures inside federated searches",
		},
		[]string{"collection"},
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "query_cache_total",
			Help:      "Query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var federatedMetricsRegistered bool

// RegisterFederatedMetrics registers Prometheus federated search metrics.
// Must be called once from main.
func RegisterFederatedMetrics() {
	if federatedMetricsRegistered {
		return
	}
	prometheus.MustRegister(FederatedRequestsTotal)
	prometheus.MustRegister(FederatedRequestDuration)
	prometheus.MustRegister(CollectionErrorsTotal)
	prometheus.MustRegister(QueryCacheTotal)
	federatedMetricsRegistered = true
}
