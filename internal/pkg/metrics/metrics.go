// Package metrics holds the Prometheus collectors of the analyzer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PortfolioFetches counts balance aggregations by outcome (success, partial, failure).
	PortfolioFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio_analyzer",
		Name:      "portfolio_fetches_total",
		Help:      "Number of wallet balance aggregations by outcome.",
	}, []string{"status"})

	// TokenFetchFailures counts tokens omitted from a portfolio because a contract read failed.
	TokenFetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio_analyzer",
		Name:      "token_fetch_failures_total",
		Help:      "Number of tokens skipped because a contract read failed.",
	}, []string{"token_address"})

	// RPCCallDuration observes chain RPC latency per method.
	RPCCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio_analyzer",
		Name:      "rpc_call_duration_seconds",
		Help:      "Latency of chain RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "outcome"})

	// AnalysisDuration observes the end-to-end time of a wallet analysis.
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "portfolio_analyzer",
		Name:      "analysis_duration_seconds",
		Help:      "Time to fetch and analyze one wallet.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	// StaleSearchResults counts session search results discarded because a newer search started.
	StaleSearchResults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio_analyzer",
		Name:      "stale_search_results_total",
		Help:      "Search results dropped because a newer search superseded them.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry.
// Calling it more than once is a no-op.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PortfolioFetches,
			TokenFetchFailures,
			RPCCallDuration,
			AnalysisDuration,
			StaleSearchResults,
		)
	})
}
