package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Request outcomes
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RequestMetricsCollector tracks every command and query sent through the mediator
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Mediator request duration by request type",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 2.0, 10.0},
			},
			[]string{"request"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Mediator requests by type and outcome",
			},
			[]string{"request", "outcome"},
		),
	}
}

// Register registers the request metrics with the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *RequestMetricsCollector) RecordRequest(request string, duration float64, err error) {
	c.requestDuration.WithLabelValues(request).Observe(duration)
	c.requestsTotal.WithLabelValues(request, outcome(err)).Inc()
}

// outcome buckets an error into a low-cardinality label
func outcome(err error) string {
	var (
		invalid    *shared.ValidationError
		quoteGone  *shared.QuoteNotFoundError
		regionGone *shared.RegionNotFoundError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case errors.As(err, &quoteGone), errors.As(err, &regionGone):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
