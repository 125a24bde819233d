package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	storeOperationsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_store_operations_total",
			Help: "Total store mutations by operation",
		},
		[]string{"op"},
	)

	recipesTotal = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Name: "recipes_total",
		Help: "Recipes currently held by the store",
	})

	filteredTotal = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Name: "recipes_filtered_total",
		Help: "Recipes matching the current search term",
	})

	favoritesTotal = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Name: "recipes_favorites_total",
		Help: "Favorite entries, duplicates included",
	})

	danglingFavoritesTotal = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Name: "recipes_dangling_favorites_total",
		Help: "Favorite entries whose recipe no longer exists",
	})

	recommendationsSize = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "recipes_recommendations_size",
		Help:    "Number of recipes returned per recommendation run",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})

	httpRequestsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// StoreCounts summarizes a store snapshot for gauge updates.
type StoreCounts struct {
	Recipes           int
	Filtered          int
	Favorites         int
	DanglingFavorites int
	Recommendations   int
}

// ObserveStoreMutation records one completed store mutation.
func ObserveStoreMutation(op string, counts StoreCounts, recommended bool) {
	storeOperationsTotal.WithLabelValues(op).Inc()
	recipesTotal.Set(float64(counts.Recipes))
	filteredTotal.Set(float64(counts.Filtered))
	favoritesTotal.Set(float64(counts.Favorites))
	danglingFavoritesTotal.Set(float64(counts.DanglingFavorites))
	if recommended {
		recommendationsSize.Observe(float64(counts.Recommendations))
	}
}

// ObserveHTTPRequest records a served request. route is the gin route template.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
