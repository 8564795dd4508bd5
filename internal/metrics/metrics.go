package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// VersionListingsTotal counts version listings by scope (latest, model, object).
	VersionListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "version_listings_total",
			Help: "Total number of version listings served by scope",
		},
		[]string{"scope"},
	)

	// VersionsServedTotal counts version views returned to clients.
	VersionsServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "versions_served_total",
			Help: "Total number of version views returned",
		},
	)
)

// UnmatchedPath labels requests that matched no route.
const UnmatchedPath = "unmatched"

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, VersionListingsTotal, VersionsServedTotal)
	})
}

// NormalizePath reduces cardinality of path labels. Callers pass the matched
// route pattern; numeric segments are collapsed for anything else.
// E.g. /v1/scans/45 -> /v1/scans/{id}; "" -> unmatched.
func NormalizePath(path string) string {
	if path == "" {
		return UnmatchedPath
	}
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordListing counts one listing of n versions for scope.
func RecordListing(scope string, n int) {
	VersionListingsTotal.WithLabelValues(scope).Inc()
	VersionsServedTotal.Add(float64(n))
}
