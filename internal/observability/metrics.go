// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Generation metrics
	OrdersGenerated    *prometheus.CounterVec
	LineItemsGenerated *prometheus.CounterVec
	ProductsGenerated  prometheus.Counter
	CustomersGenerated prometheus.Counter
	MarketingRows      prometheus.Counter
	BudgetRows         prometheus.Counter

	// Pipeline metrics
	PhaseDuration *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec

	// Storage metrics
	RowsPersisted *prometheus.CounterVec
	StoreErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
// Register at most once per process; promauto panics on duplicates.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "bi_pipeline"
	}

	return &Metrics{
		// Generation metrics
		OrdersGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "orders_total",
			Help:      "Total number of orders generated by shop",
		}, []string{"shop_id"}),
		LineItemsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "line_items_total",
			Help:      "Total number of line items generated by shop",
		}, []string{"shop_id"}),
		ProductsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "products_total",
			Help:      "Total number of catalog products generated",
		}),
		CustomersGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "customers_total",
			Help:      "Total number of customers generated",
		}),
		MarketingRows: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "marketing_rows_total",
			Help:      "Total number of daily marketing spend rows generated",
		}),
		BudgetRows: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "budget_rows_total",
			Help:      "Total number of monthly budget rows generated",
		}),

		// Pipeline metrics
		PhaseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "phase_duration_seconds",
			Help:      "Pipeline phase execution duration in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}, []string{"phase"}),
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),

		// Storage metrics
		RowsPersisted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "rows_persisted_total",
			Help:      "Total number of rows persisted by table",
		}, []string{"table"}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of store errors by table and operation",
		}, []string{"table", "operation"}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last successful run",
		}),
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePhase records one phase execution.
func (m *Metrics) ObservePhase(phase string, seconds float64) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(seconds)
}

// RecordShopDay records one generated shop-day worth of orders and lines.
func (m *Metrics) RecordShopDay(shopID string, orders, lines int) {
	if m == nil {
		return
	}
	m.OrdersGenerated.WithLabelValues(shopID).Add(float64(orders))
	m.LineItemsGenerated.WithLabelValues(shopID).Add(float64(lines))
}

// RecordPersisted records rows written to a table.
func (m *Metrics) RecordPersisted(table string, rows int) {
	if m == nil {
		return
	}
	m.RowsPersisted.WithLabelValues(table).Add(float64(rows))
}

// RecordStoreError records a failed store operation.
func (m *Metrics) RecordStoreError(table, operation string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(table, operation).Inc()
}
