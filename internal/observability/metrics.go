package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce                sync.Once
	storeOperationsTotal        *prometheus.CounterVec
	storeOperationFailuresTotal *prometheus.CounterVec
	notificationsPublishedTotal *prometheus.CounterVec
	lessonsCompletedTotal       prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		storeOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "educode_store_operations_total",
			Help: "Total number of collection read-modify-write operations.",
		}, []string{"collection", "operation"})

		storeOperationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "educode_store_operation_failures_total",
			Help: "Total number of storage operations that degraded to a no-op.",
		}, []string{"collection", "operation"})

		notificationsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "educode_notifications_published_total",
			Help: "Total number of notifications added to user feeds.",
		}, []string{"type"})

		lessonsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "educode_lessons_completed_total",
			Help: "Total number of lesson completion transitions.",
		})

		prometheus.MustRegister(
			storeOperationsTotal,
			storeOperationFailuresTotal,
			notificationsPublishedTotal,
			lessonsCompletedTotal,
		)
	})
}

// StoreOperations exposes the counter for collection operations.
func StoreOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return storeOperationsTotal
}

// StoreOperationFailures exposes the counter for degraded storage operations.
func StoreOperationFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return storeOperationFailuresTotal
}

// NotificationsPublished exposes the counter for published notifications.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublishedTotal
}

// LessonsCompleted exposes the counter for lesson completion transitions.
func LessonsCompleted() prometheus.Counter {
	RegisterMetrics()
	return lessonsCompletedTotal
}
