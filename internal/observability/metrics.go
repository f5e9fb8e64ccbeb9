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
	// Extract metrics
	RowsStaged    *prometheus.CounterVec
	StagingErrors *prometheus.CounterVec

	// Transform metrics
	FactRowsBuilt      prometheus.Counter
	AggregateRowsBuilt *prometheus.CounterVec

	// Load metrics
	TablesLoaded *prometheus.CounterVec
	RowsLoaded   *prometheus.CounterVec

	// Stage timing
	StageDuration *prometheus.HistogramVec

	// Quality metrics
	QualityChecksRun     *prometheus.CounterVec
	QualityCheckFailures *prometheus.CounterVec

	// Reporting metrics
	ReportsGenerated prometheus.Counter

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ecommerce_pipeline"
	}

	return &Metrics{
		RowsStaged: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "rows_staged_total",
			Help:      "Total number of raw rows written to the staging zone by dataset",
		}, []string{"dataset"}),
		StagingErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "staging_errors_total",
			Help:      "Total number of staging write failures by dataset",
		}, []string{"dataset"}),

		FactRowsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "fact_rows_built_total",
			Help:      "Total number of fact table rows built",
		}),
		AggregateRowsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "aggregate_rows_built_total",
			Help:      "Total number of aggregate rows built by table",
		}, []string{"table"}),

		TablesLoaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "tables_loaded_total",
			Help:      "Total number of warehouse table loads by table and status",
		}, []string{"table", "status"}),
		RowsLoaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "rows_loaded_total",
			Help:      "Total number of rows loaded into the warehouse by table",
		}, []string{"table"}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}, []string{"stage"}),

		QualityChecksRun: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "checks_run_total",
			Help:      "Total number of quality checks run by name",
		}, []string{"check"}),
		QualityCheckFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "check_failures_total",
			Help:      "Total number of quality check failures by name",
		}, []string{"check"}),

		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last fully successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordStaged counts rows written to one staging dataset.
func RecordStaged(dataset string, rows int) {
	DefaultMetrics.RowsStaged.WithLabelValues(dataset).Add(float64(rows))
}

// RecordStagingError counts a staging write failure.
func RecordStagingError(dataset string) {
	DefaultMetrics.StagingErrors.WithLabelValues(dataset).Inc()
}

// RecordFactRows counts built fact rows.
func RecordFactRows(rows int) {
	DefaultMetrics.FactRowsBuilt.Add(float64(rows))
}

// RecordAggregateRows counts built aggregate rows for one table.
func RecordAggregateRows(table string, rows int) {
	DefaultMetrics.AggregateRowsBuilt.WithLabelValues(table).Add(float64(rows))
}

// RecordTableLoad records one warehouse table load attempt.
func RecordTableLoad(table string, rows int, err error) {
	if err != nil {
		DefaultMetrics.TablesLoaded.WithLabelValues(table, "error").Inc()
		return
	}
	DefaultMetrics.TablesLoaded.WithLabelValues(table, "ok").Inc()
	DefaultMetrics.RowsLoaded.WithLabelValues(table).Add(float64(rows))
}

// RecordStageDuration records one pipeline stage execution.
func RecordStageDuration(stage string, seconds float64) {
	DefaultMetrics.StageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordQualityCheck records one quality check outcome.
func RecordQualityCheck(check string, ok bool) {
	DefaultMetrics.QualityChecksRun.WithLabelValues(check).Inc()
	if !ok {
		DefaultMetrics.QualityCheckFailures.WithLabelValues(check).Inc()
	}
}

// RecordReportGenerated counts a generated report.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}

// RecordSuccessfulRun stamps the last fully successful run.
func RecordSuccessfulRun(unixSeconds int64) {
	DefaultMetrics.LastSuccessfulRun.Set(float64(unixSeconds))
}
