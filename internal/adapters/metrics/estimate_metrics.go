package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// EstimateMetricsCollector handles quote recomputation metrics
type EstimateMetricsCollector struct {
	recomputesTotal   prometheus.Counter
	recomputeDuration prometheus.Histogram
	quoteTotal        prometheus.Histogram
	boqItems          prometheus.Gauge
	unresolvedPrices  *prometheus.CounterVec
}

// NewEstimateMetricsCollector creates a new estimate metrics collector
func NewEstimateMetricsCollector() *EstimateMetricsCollector {
	return &EstimateMetricsCollector{
		recomputesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recomputes_total",
				Help:      "Total number of full quote recomputations",
			},
		),

		recomputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recompute_duration_seconds",
				Help:      "Quote recomputation duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),

		quoteTotal: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_total_amount",
				Help:      "Distribution of quote total amounts",
				Buckets:   []float64{10000, 100000, 500000, 1000000, 5000000, 10000000, 50000000},
			},
		),

		boqItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "boq_items",
				Help:      "Number of bill items in the last recomputed quote",
			},
		),

		unresolvedPrices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unresolved_prices_total",
				Help:      "Price lookups no source could resolve, by category",
			},
			[]string{"category"},
		),
	}
}

// Register registers all estimate metrics with the Prometheus registry
func (c *EstimateMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.recomputesTotal,
		c.recomputeDuration,
		c.quoteTotal,
		c.boqItems,
		c.unresolvedPrices,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRecompute records one recomputation
func (c *EstimateMetricsCollector) RecordRecompute(duration float64, totalAmount float64, boqItems int, unresolved []pricing.Lookup) {
	c.recomputesTotal.Inc()
	c.recomputeDuration.Observe(duration)
	c.quoteTotal.Observe(totalAmount)
	c.boqItems.Set(float64(boqItems))
	for _, l := range unresolved {
		c.unresolvedPrices.WithLabelValues(string(l.Category)).Inc()
	}
}
