package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/hci-versions/internal/metrics"
)

// Prometheus records request duration and count for each request, labelled by
// the matched route pattern. Requests that match no route share one label.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrap := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrap, r)
		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, routePattern(r), wrap.status, time.Since(start).Seconds())
	})
}
