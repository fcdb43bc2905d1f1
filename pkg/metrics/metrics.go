// Package metrics provides Prometheus collectors for the environment pool and catalog tables.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolMetrics tracks environment lease activity.
type PoolMetrics struct {
	Available   prometheus.Gauge
	Leased      prometheus.Gauge
	Acquired    prometheus.Counter
	Cancelled   prometheus.Counter
	AcquireWait prometheus.Histogram
}

// NewPoolMetrics creates pool collectors and registers them with registry.
func NewPoolMetrics(registry prometheus.Registerer) (*PoolMetrics, error) {
	m := &PoolMetrics{
		Available: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fgdb_envpool_available",
			Help: "Number of environments currently available for lease",
		}),
		Leased: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fgdb_envpool_leased",
			Help: "Number of environments currently leased",
		}),
		Acquired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fgdb_envpool_acquired_total",
			Help: "Total number of successful environment acquisitions",
		}),
		Cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fgdb_envpool_acquire_cancelled_total",
			Help: "Total number of acquisitions abandoned because the context ended",
		}),
		AcquireWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fgdb_envpool_acquire_wait_seconds",
			Help:    "Time spent waiting for an environment lease",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if registry != nil {
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveAcquire records a completed acquisition that started at start.
func (m *PoolMetrics) ObserveAcquire(start time.Time) {
	m.Acquired.Inc()
	m.AcquireWait.Observe(time.Since(start).Seconds())
}

// SetOccupancy records the current partition of the pool.
func (m *PoolMetrics) SetOccupancy(available, leased int) {
	m.Available.Set(float64(available))
	m.Leased.Set(float64(leased))
}

// Collect implements the prometheus.Collector interface.
func (m *PoolMetrics) Collect(ch chan<- prometheus.Metric) {
	ch <- m.Available
	ch <- m.Leased
	ch <- m.Acquired
	ch <- m.Cancelled
	ch <- m.AcquireWait
}

// Describe implements the prometheus.Collector interface.
func (m *PoolMetrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.Available.Desc()
	ch <- m.Leased.Desc()
	ch <- m.Acquired.Desc()
	ch <- m.Cancelled.Desc()
	ch <- m.AcquireWait.Desc()
}

// TableMetrics counts per-table operations and their row volume.
type TableMetrics struct {
	Operations *prometheus.CounterVec
	Rows       *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewTableMetrics creates table collectors and registers them with registry.
func NewTableMetrics(registry prometheus.Registerer) (*TableMetrics, error) {
	m := &TableMetrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fgdb_table_operations_total",
			Help: "Total number of table operations by table, operation and outcome",
		}, []string{"table", "op", "outcome"}),
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fgdb_table_rows_total",
			Help: "Rows read or written by table operations",
		}, []string{"table", "op"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fgdb_table_operation_duration_seconds",
			Help:    "Duration of table operations",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"table", "op"}),
	}
	if registry != nil {
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register table metrics: %w", err)
		}
	}
	return m, nil
}

// Observe records one table operation.
func (m *TableMetrics) Observe(table, op string, rows int64, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(table, op, outcome).Inc()
	if rows > 0 {
		m.Rows.WithLabelValues(table, op).Add(float64(rows))
	}
	m.Duration.WithLabelValues(table, op).Observe(time.Since(start).Seconds())
}

// Collect implements the prometheus.Collector interface.
func (m *TableMetrics) Collect(ch chan<- prometheus.Metric) {
	m.Operations.Collect(ch)
	m.Rows.Collect(ch)
	m.Duration.Collect(ch)
}

// Describe implements the prometheus.Collector interface.
func (m *TableMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.Operations.Describe(ch)
	m.Rows.Describe(ch)
	m.Duration.Describe(ch)
}
