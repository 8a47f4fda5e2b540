// Package metrics provides the centralized Prometheus metrics registry for
// the equity screener.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	WatchlistLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equity_screener",
		Name:      "watchlist_loads_total",
		Help:      "Total number of watchlist load attempts by outcome",
	}, []string{"outcome"})
	ScreensTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equity_screener",
		Name:      "screens_total",
		Help:      "Total number of screen passes executed",
	})
	ScreenCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equity_screener",
		Name:      "screen_cache_hits_total",
		Help:      "Total number of screen results served from cache",
	})
	SearchQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equity_screener",
		Name:      "search_queries_total",
		Help:      "Total number of full-text search queries",
	})
)

// Gauge metrics
var (
	WatchlistSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equity_screener",
		Name:      "watchlist_size",
		Help:      "Number of stocks in the loaded watchlist",
	})
	RatingDistribution = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "equity_screener",
		Name:      "rating_distribution",
		Help:      "Number of stocks per rating label in the last unfiltered pass",
	}, []string{"rating"})
)

// Histogram metrics
var (
	ScreenDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "equity_screener",
		Name:      "screen_duration_seconds",
		Help:      "Duration of screen passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "equity_screener",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(WatchlistLoadsTotal)
		registry.MustRegister(ScreensTotal)
		registry.MustRegister(ScreenCacheHitsTotal)
		registry.MustRegister(SearchQueriesTotal)

		registry.MustRegister(WatchlistSize)
		registry.MustRegister(RatingDistribution)

		registry.MustRegister(ScreenDuration)
		registry.MustRegister(RequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordWatchlistLoad records a watchlist load attempt.
func RecordWatchlistLoad(success bool, size int) {
	if success {
		WatchlistLoadsTotal.WithLabelValues("success").Inc()
		WatchlistSize.Set(float64(size))
		return
	}
	WatchlistLoadsTotal.WithLabelValues("failure").Inc()
}

// RecordScreen records a completed screen pass.
func RecordScreen(durationSeconds float64) {
	ScreensTotal.Inc()
	ScreenDuration.Observe(durationSeconds)
}

// RecordScreenCacheHit records a screen served from cache.
func RecordScreenCacheHit() {
	ScreenCacheHitsTotal.Inc()
}

// RecordSearchQuery records a full-text search query.
func RecordSearchQuery() {
	SearchQueriesTotal.Inc()
}

// UpdateRatingDistribution publishes the per-label stock counts.
func UpdateRatingDistribution(counts map[string]int) {
	for label, count := range counts {
		RatingDistribution.WithLabelValues(label).Set(float64(count))
	}
}
