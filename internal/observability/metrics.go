package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resonate_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeToggles counts like toggle operations by target kind and direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_like_toggles_total",
		Help: "Total number of like toggles by target kind and direction",
	}, []string{"kind", "direction"})

	// CascadeDeletedNodes counts comment records removed by cascading deletes,
	// labelled by the entry point that triggered the cascade.
	CascadeDeletedNodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_cascade_deleted_nodes_total",
		Help: "Total number of comment records removed by cascading deletes",
	}, []string{"entry"})

	// CascadeBranchFailures counts subtree branches that failed during a
	// best-effort cascade sweep.
	CascadeBranchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_cascade_branch_failures_total",
		Help: "Total number of failed branches during cascading deletes",
	}, []string{"entry"})
)

// CountLikeToggle records one like toggle for the given target kind.
func CountLikeToggle(kind string, liked bool) {
	direction := "unlike"
	if liked {
		direction = "like"
	}
	LikeToggles.WithLabelValues(kind, direction).Inc()
}

// ObserveQuery records the latency of a database query started at the given time.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
