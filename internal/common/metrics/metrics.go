// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_routed_total",
			Help: "Total number of queries routed, by winning feature",
		},
		[]string{"feature"},
	)

	RoutingConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routing_confidence",
			Help:    "Confidence of routing decisions",
			Buckets: prometheus.LinearBuckets(0.0, 0.1, 11),
		},
		[]string{"feature"},
	)

	PlanStepsEmitted = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_steps_emitted",
			Help:    "Number of plan steps emitted per routed query",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		},
		[]string{"feature"},
	)

	StepsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_steps_executed_total",
			Help: "Total number of plan steps executed, by executor and outcome",
		},
		[]string{"executor", "outcome"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
