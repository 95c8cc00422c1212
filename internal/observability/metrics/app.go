package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Business metric names.
const (
	MetricItemsCreated    = "items_created_total"
	MetricItemsInDatabase = "items_in_database"
	MetricDBQueryDuration = "db_query_duration_seconds"
)

// AppMetrics records business-level metrics on the registry.
// All methods are nil-receiver safe so components can run unmetered in tests.
type AppMetrics struct {
	registry *Registry
	logger   *slog.Logger
}

// NewAppMetrics registers the business instruments.
func NewAppMetrics(registry *Registry, logger *slog.Logger) (*AppMetrics, error) {
	if err := registry.Register(MetricItemsCreated, KindCounter, nil,
		WithHelp("Total number of items created")); err != nil {
		return nil, err
	}
	if err := registry.Register(MetricItemsInDatabase, KindGauge, nil,
		WithHelp("Current number of items stored in the database")); err != nil {
		return nil, err
	}
	if err := registry.Register(MetricDBQueryDuration, KindHistogram, []string{"operation"},
		WithHelp("Database query duration in seconds"),
		WithBuckets(prometheus.ExponentialBuckets(0.001, 2, 10))); err != nil {
		return nil, err
	}
	return &AppMetrics{registry: registry, logger: logger}, nil
}

// RecordItemCreated increments the created-items counter.
func (m *AppMetrics) RecordItemCreated() {
	if m == nil {
		return
	}
	m.observe(MetricItemsCreated, nil, 1)
}

// SetItemsInDatabase overwrites the current item count gauge.
func (m *AppMetrics) SetItemsInDatabase(count int64) {
	if m == nil {
		return
	}
	m.observe(MetricItemsInDatabase, nil, float64(count))
}

// ObserveDBQuery records the duration of a database operation
// (e.g. "insert_item", "list_items").
func (m *AppMetrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.observe(MetricDBQueryDuration, []string{operation}, duration.Seconds())
}

func (m *AppMetrics) observe(name string, labels []string, value float64) {
	if err := m.registry.Observe(name, labels, value); err != nil {
		m.logger.Error("business metric observation dropped",
			slog.String("metric", name),
			slog.Any("error", err))
	}
}
