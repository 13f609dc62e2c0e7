// Package metrics exposes Prometheus collectors for query and HTTP activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "draftmetrics"

// Query outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
)

// Recorder owns every collector and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	queries        *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	fetchFailures  prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	matchesScanned prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Analytics queries by kind and outcome.",
		}, []string{"kind", "outcome"}),
		queryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Fetch plus aggregation time per query kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		fetchFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Record fetches that failed and produced no data.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		matchesScanned: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matches_scanned",
			Help:      "Matches folded per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// ObserveQuery records one query of kind with its outcome and duration.
func (r *Recorder) ObserveQuery(kind, outcome string, d time.Duration) {
	r.queries.WithLabelValues(kind, outcome).Inc()
	r.queryDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveMatches records how many matches a query folded.
func (r *Recorder) ObserveMatches(n int) {
	r.matchesScanned.Observe(float64(n))
}

func (r *Recorder) FetchFailed() {
	r.fetchFailures.Inc()
}

// ObserveHTTP records one served request.
func (r *Recorder) ObserveHTTP(route string, code int, d time.Duration) {
	r.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
