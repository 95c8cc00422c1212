package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Kind identifies the type of a metric instrument.
type Kind int

const (
	// KindCounter is a monotonically non-decreasing value, reset only on restart.
	KindCounter Kind = iota
	// KindGauge is a current value that can move in both directions.
	KindGauge
	// KindHistogram records a distribution via fixed buckets plus sum and count.
	KindHistogram
)

// String returns the instrument kind name.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

type registerOptions struct {
	help    string
	buckets []float64
}

// RegisterOption customizes instrument registration.
type RegisterOption func(*registerOptions)

// WithHelp sets the help text rendered on the metric's # HELP line.
func WithHelp(help string) RegisterOption {
	return func(o *registerOptions) { o.help = help }
}

// WithBuckets sets histogram bucket boundaries. Boundaries must be in
// ascending order and are fixed for the lifetime of the instrument.
// Ignored for counters and gauges. Defaults to prometheus.DefBuckets.
func WithBuckets(buckets []float64) RegisterOption {
	return func(o *registerOptions) { o.buckets = buckets }
}

// instrument is one registered metric with its declared label schema.
// The underlying prometheus vectors serialize per-series updates internally,
// so concurrent observations on the same series never lose updates.
type instrument struct {
	kind    Kind
	labels  []string
	buckets []float64

	counter   *prometheus.CounterVec
	gauge     *prometheus.GaugeVec
	histogram *prometheus.HistogramVec
}

// Registry holds all registered instruments, keyed by metric name.
// It is created once at process start and shared by reference; instruments
// are registered during startup and series accumulate additively until exit.
// All methods are safe for concurrent use. The mutex only guards the
// instrument table; per-series updates go through client_golang's own
// atomic counters, so Observe never serializes on the whole registry.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]*instrument
	prom        *prometheus.Registry
}

// NewRegistry creates an empty registry backed by a private prometheus
// registry (no default-registry globals, no process/go collectors).
func NewRegistry() *Registry {
	return &Registry{
		instruments: make(map[string]*instrument),
		prom:        prometheus.NewRegistry(),
	}
}

// Register declares an instrument with a fixed label schema.
// Registering the same name again with an identical schema is a no-op, which
// makes repeated initialization safe. A schema conflict returns a
// *DuplicateMetricError and should be treated as fatal at startup.
func (r *Registry) Register(name string, kind Kind, labelNames []string, opts ...RegisterOption) error {
	o := registerOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	var buckets []float64
	if kind == KindHistogram {
		buckets = o.buckets
		if len(buckets) == 0 {
			buckets = prometheus.DefBuckets
		}
		if !slices.IsSorted(buckets) {
			return fmt.Errorf("register %s: histogram buckets must be in ascending order", name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.instruments[name]; ok {
		if existing.kind == kind &&
			slices.Equal(existing.labels, labelNames) &&
			slices.Equal(existing.buckets, buckets) {
			return nil
		}
		return &DuplicateMetricError{Name: name}
	}

	inst := &instrument{
		kind:    kind,
		labels:  slices.Clone(labelNames),
		buckets: buckets,
	}

	var collector prometheus.Collector
	switch kind {
	case KindCounter:
		inst.counter = prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: name, Help: o.help}, inst.labels)
		collector = inst.counter
	case KindGauge:
		inst.gauge = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: name, Help: o.help}, inst.labels)
		collector = inst.gauge
	case KindHistogram:
		inst.histogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: name, Help: o.help, Buckets: buckets}, inst.labels)
		collector = inst.histogram
	default:
		return fmt.Errorf("register %s: unknown instrument kind %d", name, kind)
	}

	if err := r.prom.Register(collector); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	r.instruments[name] = inst
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for startup paths where a schema conflict is unrecoverable.
func (r *Registry) MustRegister(name string, kind Kind, labelNames []string, opts ...RegisterOption) {
	if err := r.Register(name, kind, labelNames, opts...); err != nil {
		panic(err)
	}
}

// Observe applies one observation to a registered instrument: counters add
// the value, gauges are set to it, histograms record it. The first use of a
// label-value tuple creates that series; series are never removed.
// Returns *UnknownMetricError or *LabelCardinalityError on misuse; callers
// on the request path should log and drop rather than fail the request.
func (r *Registry) Observe(name string, labelValues []string, value float64) error {
	r.mu.RLock()
	inst, ok := r.instruments[name]
	r.mu.RUnlock()
	if !ok {
		return &UnknownMetricError{Name: name}
	}
	if len(labelValues) != len(inst.labels) {
		return &LabelCardinalityError{Name: name, Want: len(inst.labels), Got: len(labelValues)}
	}

	switch inst.kind {
	case KindCounter:
		inst.counter.WithLabelValues(labelValues...).Add(value)
	case KindGauge:
		inst.gauge.WithLabelValues(labelValues...).Set(value)
	case KindHistogram:
		inst.histogram.WithLabelValues(labelValues...).Observe(value)
	}
	return nil
}

// Render produces a fresh snapshot of every instrument in the Prometheus
// plaintext exposition format. Labels within a series are sorted by name,
// so two renders with no intervening observations are byte-identical.
func (r *Registry) Render() (string, error) {
	families, err := r.prom.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}

// Handler returns the scrape endpoint handler for this registry.
// The response carries Content-Type: text/plain; version=0.0.4.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying gatherer, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}
