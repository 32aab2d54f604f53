package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"flixauth/internal/models"
)

// Metrics groups every collector the service exports. Collectors are bound
// to the registry passed to New instead of the global default registry, so
// several servers can live in one process (tests do this).
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	HTTPResponseSizeBytes      *prometheus.HistogramVec
	InFlightRequests           prometheus.Gauge

	// verdict: authenticated, invalid_credentials, missing_fields, invalid_body
	LoginAttemptsTotal *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPResponseSizeBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 6),
		}, []string{"method", "path", "status"}),
		InFlightRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests.",
		}),
		LoginAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixauth_login_attempts_total",
			Help: "Total number of login attempts by verdict.",
		}, []string{"verdict"}),
	}
}

// ObserveVerdict counts one login attempt.
func (m *Metrics) ObserveVerdict(v models.Verdict) {
	m.LoginAttemptsTotal.WithLabelValues(v.String()).Inc()
}

// ObserveInvalidBody counts an attempt whose body could not be decoded.
func (m *Metrics) ObserveInvalidBody() {
	m.LoginAttemptsTotal.WithLabelValues("invalid_body").Inc()
}
