package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var serviceName atomic.Value

func init() {
	serviceName.Store("insurance")
}

// SetService sets the value of the "service" label on every metric.
func SetService(name string) {
	if name != "" {
		serviceName.Store(name)
	}
}

func service() string {
	return serviceName.Load().(string)
}

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	NearestLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearest_point_lookups_total",
			Help: "Total number of nearest point lookups",
		},
		[]string{"service", "source", "status"},
	)

	NearestLookupCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nearest_point_candidates",
			Help:    "Number of candidate points scanned per lookup",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"service"},
	)

	PointCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_cache_requests_total",
			Help: "Point candidate cache hits and misses",
		},
		[]string{"service", "result"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	ChangeEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_events_published_total",
			Help: "Total number of change events published",
		},
		[]string{"service", "sink", "table", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service(), method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service(), method, path, status).Observe(duration.Seconds())
}

func InFlight() prometheus.Gauge {
	return HttpRequestsInFlight.WithLabelValues(service())
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(operation string, err error, duration time.Duration) {
	DatabaseQueriesTotal.WithLabelValues(service(), operation, status(err)).Inc()
	DatabaseQueryDuration.WithLabelValues(service(), operation).Observe(duration.Seconds())
}

// RecordNearestLookup records a nearest point lookup. source is the calling surface (http, mcp).
func RecordNearestLookup(source string, err error) {
	NearestLookupsTotal.WithLabelValues(service(), source, status(err)).Inc()
}

func ObserveNearestCandidates(n int) {
	NearestLookupCandidates.WithLabelValues(service()).Observe(float64(n))
}

func RecordPointCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	PointCacheTotal.WithLabelValues(service(), result).Inc()
}

// RecordChangePublish records a change event delivery to a sink (rabbitmq, websocket).
func RecordChangePublish(sink, table string, err error) {
	ChangeEventsPublished.WithLabelValues(service(), sink, table, status(err)).Inc()
}

func WebSocketConnections() prometheus.Gauge {
	return WebSocketConnectionsGauge.WithLabelValues(service())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
