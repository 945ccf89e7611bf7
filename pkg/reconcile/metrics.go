package reconcile

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the reconciliation counters.
//
// Metrics:
//   - reconcile_checks_total{result} - availability checks by outcome ("can_cook", "missing", "error")
//   - reconcile_missing_ingredients_total - ingredients reported short
//   - reconcile_merge_entries_total{outcome} - shopping-list merge writes ("created", "updated", "failed")
type Metrics struct {
	ChecksTotal             *prometheus.CounterVec
	MissingIngredientsTotal prometheus.Counter
	MergeEntriesTotal       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ChecksTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "reconcile_checks_total",
					Help: "Total number of ingredient availability checks",
				},
				[]string{"result"},
			),
			MissingIngredientsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "reconcile_missing_ingredients_total",
					Help: "Total number of ingredients reported as short",
				},
			),
			MergeEntriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "reconcile_merge_entries_total",
					Help: "Total number of shopping-list merge writes",
				},
				[]string{"outcome"},
			),
		}
	})
	return globalMetrics
}
