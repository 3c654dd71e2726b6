package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics for the service: the HTTP request
// counters plus the ledger report build instrumentation.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reportBuilds    *prometheus.CounterVec
	reportDuration  *prometheus.HistogramVec
	reportLines     *prometheus.CounterVec
}

// NewMetrics initialises the registry and collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerline_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledgerline_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	builds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerline_report_builds_total",
		Help: "Ledger report builds by ledger type and outcome.",
	}, []string{"type", "status"})
	buildDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledgerline_report_build_duration_seconds",
		Help:    "Ledger report build duration per ledger type.",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerline_report_lines_total",
		Help: "Journal lines classified per ledger type.",
	}, []string{"type"})
	registry.MustRegister(requests, duration, builds, buildDuration, lines)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		reportBuilds:    builds,
		reportDuration:  buildDuration,
		reportLines:     lines,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and duration for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveBuild implements the report service's build instrumentation.
func (m *Metrics) ObserveBuild(ledgerType, status string, seconds float64) {
	if m == nil {
		return
	}
	m.reportBuilds.WithLabelValues(ledgerType, status).Inc()
	m.reportDuration.WithLabelValues(ledgerType).Observe(seconds)
}

// AddLines counts journal lines fed into the classifier.
func (m *Metrics) AddLines(ledgerType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.reportLines.WithLabelValues(ledgerType).Add(float64(count))
}

// Registerer exposes the registry for registering custom collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
