package observability

import (
	"time"

	"doccompare/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "doccompare"

var (
	// comparisonsTotal counts comparisons by outcome.
	// Labels: status (success, invalid_input, error, cached, cancelled)
	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "comparison",
		Name:      "total",
		Help:      "Total comparisons by status",
	}, []string{"status"})

	// comparisonDuration measures the engine run time, excluding extraction.
	comparisonDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "comparison",
		Name:      "duration_seconds",
		Help:      "Comparison engine duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	// changesTotal counts classified changes.
	// Labels: type (added, removed, modified, unchanged)
	changesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "comparison",
		Name:      "changes_total",
		Help:      "Total classified changes by type",
	}, []string{"type"})

	// assistantRequests counts LLM calls.
	// Labels: kind (explain, explain_hunk, chat), status (success, error)
	assistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "assistant",
		Name:      "requests_total",
		Help:      "Total assistant requests by kind and status",
	}, []string{"kind", "status"})
)

// RecordComparison records a finished comparison
func RecordComparison(status string, elapsed time.Duration, stats *types.Statistics) {
	comparisonsTotal.WithLabelValues(status).Inc()
	if elapsed > 0 {
		comparisonDuration.Observe(elapsed.Seconds())
	}
	if stats == nil {
		return
	}
	changesTotal.WithLabelValues(string(types.ChangeAdded)).Add(float64(stats.AddedCount))
	changesTotal.WithLabelValues(string(types.ChangeRemoved)).Add(float64(stats.RemovedCount))
	changesTotal.WithLabelValues(string(types.ChangeModified)).Add(float64(stats.ModifiedCount))
	changesTotal.WithLabelValues(string(types.ChangeUnchanged)).Add(float64(stats.UnchangedCount))
}

// RecordAssistant records one LLM request
func RecordAssistant(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	assistantRequests.WithLabelValues(kind, status).Inc()
}
