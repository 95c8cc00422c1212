package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"item-monitor/internal/handler/http/pathutil"
	"item-monitor/internal/handler/http/responsewriter"
	"item-monitor/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP metric names.
const (
	MetricHTTPRequestsTotal   = "http_requests_total"
	MetricHTTPRequestDuration = "http_request_duration_seconds"
	MetricHTTPRequestSize     = "http_request_size_bytes"
	MetricHTTPResponseSize    = "http_response_size_bytes"
)

// durationBuckets capture API response times from fast (5ms) through slow
// (10s), giving accurate p95 and p99 latency measurements.
var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MetricsConfig controls optional behavior of the instrumentation middleware.
type MetricsConfig struct {
	// TrackResponseSize enables the response size histogram. Off by default
	// since response sizes add one series per method/endpoint/status tuple.
	TrackResponseSize bool
	// ExcludeSelf skips instrumentation for scrape requests to /metrics so
	// the exposition endpoint does not inflate its own counters.
	ExcludeSelf bool
}

// HTTPMetrics instruments HTTP traffic against an explicit metric registry.
// All instruments are registered at construction; a schema conflict there is
// a startup error, never a per-request one.
type HTTPMetrics struct {
	registry *metrics.Registry
	logger   *slog.Logger
	cfg      MetricsConfig
}

// NewHTTPMetrics registers the HTTP instruments on the given registry.
func NewHTTPMetrics(registry *metrics.Registry, logger *slog.Logger, cfg MetricsConfig) (*HTTPMetrics, error) {
	requestLabels := []string{"method", "endpoint", "status_code"}

	if err := registry.Register(MetricHTTPRequestsTotal, metrics.KindCounter, requestLabels,
		metrics.WithHelp("Total number of HTTP requests")); err != nil {
		return nil, err
	}
	if err := registry.Register(MetricHTTPRequestDuration, metrics.KindHistogram, requestLabels,
		metrics.WithHelp("HTTP request duration in seconds"),
		metrics.WithBuckets(durationBuckets)); err != nil {
		return nil, err
	}
	if err := registry.Register(MetricHTTPRequestSize, metrics.KindHistogram, []string{"method", "endpoint"},
		metrics.WithHelp("HTTP request size in bytes"),
		metrics.WithBuckets(prometheus.ExponentialBuckets(100, 10, 4))); err != nil {
		return nil, err
	}
	if cfg.TrackResponseSize {
		if err := registry.Register(MetricHTTPResponseSize, metrics.KindHistogram, requestLabels,
			metrics.WithHelp("HTTP response size in bytes"),
			metrics.WithBuckets(prometheus.ExponentialBuckets(100, 10, 4))); err != nil {
			return nil, err
		}
	}

	return &HTTPMetrics{registry: registry, logger: logger, cfg: cfg}, nil
}

// Middleware records one counter increment and one duration observation per
// request. Paths are normalized to route templates so the label set stays
// bounded; unknown paths collapse into a single sentinel value.
//
// The middleware is panic transparent: if the handler panics, the request is
// still recorded with status 500 and the panic is re-raised for the outer
// recovery middleware to handle.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cfg.ExcludeSelf && r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		endpoint := pathutil.NormalizePath(r.URL.Path)

		if r.ContentLength > 0 {
			m.observe(MetricHTTPRequestSize, []string{r.Method, endpoint}, float64(r.ContentLength))
		}

		wrapped := responsewriter.Wrap(w)
		start := time.Now()

		defer func() {
			rec := recover()
			status := wrapped.StatusCode()
			if rec != nil {
				status = http.StatusInternalServerError
			}

			labels := []string{r.Method, endpoint, strconv.Itoa(status)}
			m.observe(MetricHTTPRequestsTotal, labels, 1)
			m.observe(MetricHTTPRequestDuration, labels, time.Since(start).Seconds())
			if m.cfg.TrackResponseSize {
				m.observe(MetricHTTPResponseSize, labels, float64(wrapped.BytesWritten()))
			}

			if rec != nil {
				panic(rec)
			}
		}()

		next.ServeHTTP(wrapped, r)
	})
}

// observe records a value and drops registry errors. A broken observation
// must never fail the request it measures.
func (m *HTTPMetrics) observe(name string, labels []string, value float64) {
	if err := m.registry.Observe(name, labels, value); err != nil {
		m.logger.Warn("metric observation dropped",
			slog.String("metric", name),
			slog.Any("error", err))
	}
}

// MetricsHandler serves the Prometheus exposition endpoint for the registry.
// When a system sampler is provided, process gauges are refreshed before
// each scrape so every render reflects current process state.
func MetricsHandler(registry *metrics.Registry, sampler *metrics.SystemSampler) http.Handler {
	inner := registry.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sampler != nil {
			sampler.Sample()
		}
		inner.ServeHTTP(w, r)
	})
}
