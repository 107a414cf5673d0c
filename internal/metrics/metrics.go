// Package metrics records prediction counters and render timings in a
// private Prometheus registry that can be dumped to a textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "eeg_mood"

// Failure stages.
const (
	StageInput     = "input"
	StageClassify  = "classify"
	StageChart     = "chart"
	StageAnimation = "animation"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	Predictions    *prometheus.CounterVec
	Failures       *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	predictions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of completed mood predictions",
		},
		[]string{"mood"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Total number of prediction failures by stage",
		},
		[]string{"stage"},
	)

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering an artifact",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"artifact"},
	)

	registry.MustRegister(predictions, failures, renderDuration)

	return &Collector{
		registry:       registry,
		Predictions:    predictions,
		Failures:       failures,
		RenderDuration: renderDuration,
	}
}

// InitMoods creates a zero-valued prediction series for each mood so the
// textfile lists every mood before it is first predicted.
func (c *Collector) InitMoods(moods ...string) {
	for _, m := range moods {
		c.Predictions.WithLabelValues(m)
	}
}

// ObservePrediction counts a completed prediction.
func (c *Collector) ObservePrediction(mood string) {
	c.Predictions.WithLabelValues(mood).Inc()
}

// ObserveFailure counts a failure at the given stage.
func (c *Collector) ObserveFailure(stage string) {
	c.Failures.WithLabelValues(stage).Inc()
}

// ObserveRender records how long rendering an artifact took.
func (c *Collector) ObserveRender(artifact string, d time.Duration) {
	c.RenderDuration.WithLabelValues(artifact).Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the text exposition format,
// replacing the previous contents.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
