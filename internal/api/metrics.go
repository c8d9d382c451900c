package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pes-mcp/internal/simulation"
)

// Metrics holds the API's prometheus collectors.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	scenarioRuns      *prometheus.CounterVec
	scenarioDuration  prometheus.Histogram
	scenarioRecords   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pes_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pes_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		scenarioRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pes_scenario_runs_total",
			Help: "Total scenario runs by dominant bottleneck.",
		}, []string{"bottleneck"}),
		scenarioDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pes_scenario_run_duration_seconds",
			Help:    "Histogram of scenario pipeline durations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		scenarioRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pes_scenario_records",
			Help:    "Histogram of records in scope per scenario run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.scenarioRuns,
		m.scenarioDuration,
		m.scenarioRecords,
	)
	return m
}

// Middleware records request count and latency per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRun records one completed scenario run.
func (m *Metrics) ObserveRun(report simulation.Report, elapsed time.Duration) {
	m.scenarioRuns.WithLabelValues(string(report.Bottleneck.Label)).Inc()
	m.scenarioDuration.Observe(elapsed.Seconds())
	m.scenarioRecords.Observe(float64(report.Scope.Records))
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
