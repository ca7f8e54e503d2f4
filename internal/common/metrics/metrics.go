// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchmark_comparisons_total",
			Help: "Total number of comparison requests processed",
		},
		[]string{"status"},
	)

	ComparisonDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "benchmark_comparison_duration_seconds",
			Help: "Duration of comparison request processing in seconds",
		},
		[]string{"endpoint"},
	)

	CompetitorsPerComparison = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "benchmark_competitors_per_comparison",
			Help:    "Competitor list size per comparison request",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchmark_catalog_cache_hits_total",
			Help: "Catalog lookups served from the cache",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchmark_catalog_cache_misses_total",
			Help: "Catalog lookups that fell through to the source",
		},
	)

	NarrativeFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchmark_narrative_fallbacks_total",
			Help: "Times the deterministic narrative replaced the external model",
		},
	)
)
