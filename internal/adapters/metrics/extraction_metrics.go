package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ExtractionMetricsCollector handles plan-extraction HTTP metrics
type ExtractionMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	retries         *prometheus.CounterVec
}

// NewExtractionMetricsCollector creates a new plan-extraction metrics collector
func NewExtractionMetricsCollector() *ExtractionMetricsCollector {
	return &ExtractionMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_extraction_requests_total",
				Help:      "Total number of plan-extraction requests by status code",
			},
			[]string{"status_code"},
		),

		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_extraction_duration_seconds",
				Help:      "Plan-extraction request duration distribution",
				Buckets:   []float64{0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
		),

		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_extraction_retries_total",
				Help:      "Total number of plan-extraction retry attempts",
			},
			[]string{"reason"},
		),
	}
}

// Register registers all extraction metrics with the Prometheus registry
func (c *ExtractionMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retries,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordExtractionRequest records a completed request. Network failures use status 0.
func (c *ExtractionMetricsCollector) RecordExtractionRequest(statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration)
}

// RecordExtractionRetry records a retry attempt
func (c *ExtractionMetricsCollector) RecordExtractionRetry(reason string) {
	c.retries.WithLabelValues(reason).Inc()
}
