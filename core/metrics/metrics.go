// Package metrics provides Prometheus metrics for the reconciler.
package metrics

import (
	"time"

	"intake-reconciler/core/match"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake_reconciler"

var (
	// RunsTotal tracks reconciliation runs by origin and status
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of reconciliation runs by origin and status",
		},
		[]string{"origin", "status"},
	)

	// RunDuration tracks reconciliation run duration in seconds
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Duration of reconciliation runs in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"origin"},
	)

	// PrimaryRecordsTotal tracks resolved primary records by winning tier
	PrimaryRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "primary_records_total",
			Help:      "Total number of primary records resolved by tier",
		},
		[]string{"tier"},
	)

	// SnapshotLoadsTotal tracks source snapshot loads
	SnapshotLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "snapshot_loads_total",
			Help:      "Total number of source snapshot loads by status",
		},
		[]string{"status"},
	)

	// LeadUpdatesTotal tracks downstream lead status updates
	LeadUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "updates_total",
			Help:      "Total number of lead status updates by status",
		},
		[]string{"status"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "status_code"},
	)
)

// RecordRun records one reconciliation run and its tier distribution.
func RecordRun(origin string, summary match.Summary, duration time.Duration) {
	RunsTotal.WithLabelValues(origin, "success").Inc()
	RunDuration.WithLabelValues(origin).Observe(duration.Seconds())
	for _, tier := range append(match.Tiers(), match.TierNone) {
		if n := summary.Count(tier); n > 0 {
			PrimaryRecordsTotal.WithLabelValues(tier.String()).Add(float64(n))
		}
	}
}

// RecordRunFailure records a run that produced no report.
func RecordRunFailure(origin string) {
	RunsTotal.WithLabelValues(origin, "error").Inc()
}

// RecordSnapshotLoad records a source snapshot load
func RecordSnapshotLoad(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SnapshotLoadsTotal.WithLabelValues(status).Inc()
}

// RecordLeadUpdates records lead updates with the given status
func RecordLeadUpdates(status string, n int) {
	if n > 0 {
		LeadUpdatesTotal.WithLabelValues(status).Add(float64(n))
	}
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
