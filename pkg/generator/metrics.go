package generator

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

type Metrics struct {
	RequestsTotal *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewMetrics registers generator_requests_total{result} and
// generator_completion_duration_seconds once per process.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "generator_requests_total",
					Help: "Total number of recipe generation requests",
				},
				[]string{"result"},
			),
			Duration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "generator_completion_duration_seconds",
					Help:    "Duration of chat completion calls in seconds",
					Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
				},
			),
		}
	})
	return globalMetrics
}
