// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mamboro"

// EditsTotal counts edit attempts by outcome.
// Label:
//   - outcome: "success", "quota_exhausted", "invalid_input" or an imagegen kind
var EditsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edits_total",
		Help:      "Total number of image edit attempts, by outcome.",
	},
	[]string{"outcome"},
)

// EditDuration measures the remote model call.
var EditDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "edit_duration_seconds",
		Help:      "Duration of the remote image edit call.",
		Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	},
	[]string{"outcome"},
)

// QuotaConsumedTotal counts quota units spent after successful edits.
var QuotaConsumedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_consumed_total",
		Help:      "Total number of daily quota units consumed.",
	},
)

// QuotaResetsTotal counts administrative quota resets.
var QuotaResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_resets_total",
		Help:      "Total number of administrative quota resets.",
	},
)
