package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and catalog collectors.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by outcome",
		},
		[]string{"outcome"}, // "hit" / "empty"
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Number of records matching a search before the result limit",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_records",
			Help:      "Number of records in the current catalog snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog loads by result",
		},
		[]string{"result"}, // "ok" / "error"
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal, SearchMatches, CatalogRecords, CatalogReloadsTotal)
}

// ObserveSearch records one search that matched n records.
func ObserveSearch(n int) {
	outcome := "hit"
	if n == 0 {
		outcome = "empty"
	}
	SearchesTotal.WithLabelValues(outcome).Inc()
	SearchMatches.Observe(float64(n))
}

// ObserveCatalogReload counts a catalog load attempt.
func ObserveCatalogReload(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	CatalogReloadsTotal.WithLabelValues(result).Inc()
}

// SetCatalogRecords sets the current catalog size.
func SetCatalogRecords(n int) {
	CatalogRecords.Set(float64(n))
}
