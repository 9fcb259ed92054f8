// Package metrics provides Prometheus exporters for scoring run metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the scorekeeper.
var (
	// Counters.
	MessagesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorekeeper_messages_processed_total",
			Help: "Total number of messages classified",
		},
		[]string{"channel", "role"},
	)

	ActionsCreditedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorekeeper_actions_credited_total",
			Help: "Total number of actions credited to participants",
		},
		[]string{"kind"},
	)

	CatalogRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorekeeper_catalog_rejections_total",
			Help: "Total number of quest or bounty definitions rejected at load",
		},
		[]string{"catalog"},
	)

	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorekeeper_fetch_failures_total",
			Help: "Total number of failed platform history fetches",
		},
		[]string{"channel"},
	)

	SnapshotWriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scorekeeper_snapshot_write_failures_total",
			Help: "Total number of failed snapshot writes",
		},
	)

	// Gauges.
	ParticipantsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scorekeeper_participants_tracked",
			Help: "Number of participants in the current roster",
		},
	)

	DaysScored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scorekeeper_days_scored",
			Help: "Number of calendar days with recorded scores in the last run",
		},
	)

	// Histograms.
	RunDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scorekeeper_run_duration_seconds",
			Help:    "Duration of a full scoring run in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s to ~17min
		},
	)
)
