// Package metrics provides Prometheus metrics for drivelog.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "drivelog"

// Assignment outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeExtended = "extended"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

var (
	// SamplesIngested counts stored samples by whether they were assigned a trip on ingest.
	SamplesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_ingested_total",
			Help:      "Total number of telemetry samples stored",
		},
		[]string{"assigned"},
	)

	// Assignments counts trip assignment decisions.
	Assignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trip_assignments_total",
			Help:      "Total number of trip assignment decisions",
		},
		[]string{"source", "outcome"},
	)

	// AssignDuration measures one assignment transaction.
	AssignDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trip_assign_duration_seconds",
			Help:      "Duration of trip assignment transactions in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// QueryDuration measures read endpoints.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of trip query operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// ExcludedSamples counts samples skipped by segmentation for lacking a start time.
	ExcludedSamples = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segmentation_excluded_samples_total",
			Help:      "Total number of samples excluded from segmentation",
		},
	)

	// BackfillBacklog is the size of the last unassigned batch fetched by backfill.
	BackfillBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backfill_last_batch_size",
			Help:      "Number of unassigned samples in the last backfill batch",
		},
	)
)

// RecordAssignment records one assignment decision.
func RecordAssignment(source, outcome string, duration float64) {
	Assignments.WithLabelValues(source, outcome).Inc()
	AssignDuration.WithLabelValues(source).Observe(duration)
}

// RecordIngest records stored samples.
func RecordIngest(count int, assigned bool) {
	label := "false"
	if assigned {
		label = "true"
	}
	SamplesIngested.WithLabelValues(label).Add(float64(count))
}

// RecordQuery records a read operation.
func RecordQuery(operation string, duration float64, excluded int) {
	QueryDuration.WithLabelValues(operation).Observe(duration)
	if excluded > 0 {
		ExcludedSamples.Add(float64(excluded))
	}
}
