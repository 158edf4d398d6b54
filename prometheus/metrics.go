// Package prometheus exposes Prometheus collectors for prospect runs and
// decorators that feed them.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
)

// Metrics holds the collectors on a private registry so several instances
// can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	queries         *prometheus.CounterVec
	renders         *prometheus.CounterVec
	candidates      *prometheus.CounterVec
	lookups         *prometheus.CounterVec
	jobs            *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the prospect collectors on a new registry, along with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_queries_total",
				Help: "Total number of search queries issued, labeled by engine and status.",
			},
			[]string{"engine", "status"},
		),
		renders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_renders_total",
				Help: "Total number of page renders, labeled by status.",
			},
			[]string{"status"},
		),
		candidates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_candidates_total",
				Help: "Total number of contacts reported by completed runs, labeled by origin.",
			},
			[]string{"origin"},
		),
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_lookups_total",
				Help: "Total number of lookups performed, labeled by source and status.",
			},
			[]string{"source", "status"},
		),
		jobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_jobs_total",
				Help: "Total number of job transitions, labeled by status.",
			},
			[]string{"status"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prospect_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 5, 30, 120},
			},
			[]string{"method", "route"},
		),
	}
}

// Handler returns an http.Handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveQuery counts one search query.
func (m *Metrics) ObserveQuery(engine string, err error) {
	m.queries.WithLabelValues(engine, status(err)).Inc()
}

// ObserveRender counts one page render.
func (m *Metrics) ObserveRender(err error) {
	m.renders.WithLabelValues(status(err)).Inc()
}

// ObserveLookup counts one lookup call.
func (m *Metrics) ObserveLookup(source string, err error) {
	m.lookups.WithLabelValues(source, status(err)).Inc()
}

// ObserveCandidates adds n contacts of the given origin.
func (m *Metrics) ObserveCandidates(origin string, n int) {
	if n > 0 {
		m.candidates.WithLabelValues(origin).Add(float64(n))
	}
}

// ObserveJob counts one job transition into status.
func (m *Metrics) ObserveJob(status prospect.JobStatus) {
	m.jobs.WithLabelValues(string(status)).Inc()
}

// Middleware records request counts and latencies. The route label is the
// matched chi pattern, so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requests.WithLabelValues(r.Method, strconv.Itoa(ww.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case prospect.ErrorCode(err) == prospect.EUNAVAILABLE:
		return StatusUnavailable
	default:
		return StatusError
	}
}
