package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"flixauth/internal/metrics"
)

// PrometheusMiddleware records Prometheus metrics for HTTP requests.
type PrometheusMiddleware struct {
	metrics *metrics.Metrics
}

func NewPrometheusMiddleware(m *metrics.Metrics) *PrometheusMiddleware {
	return &PrometheusMiddleware{metrics: m}
}

// Instrument is meant for mux.Router.Use, so the path label is the matched
// route template and unknown paths cannot blow up label cardinality.
func (p *PrometheusMiddleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		p.metrics.InFlightRequests.Inc()
		defer p.metrics.InFlightRequests.Dec()

		lrw := newLoggingResponseWriter(w)
		next.ServeHTTP(lrw, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		status := strconv.Itoa(lrw.statusCode)

		p.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		p.metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		p.metrics.HTTPResponseSizeBytes.WithLabelValues(r.Method, path, status).Observe(float64(lrw.responseSize))
	})
}
