package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

const (
	// Namespace for all metrics
	namespace = "takeoff"
	// Subsystem for estimator metrics
	subsystem = "estimator"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalEstimateCollector is set by SetGlobalEstimateCollector when metrics are enabled
	globalEstimateCollector EstimateMetricsRecorder

	// globalExtractionCollector is set by SetGlobalExtractionCollector when metrics are enabled
	globalExtractionCollector ExtractionMetricsRecorder
)

// EstimateMetricsRecorder records quote recomputation events
type EstimateMetricsRecorder interface {
	RecordRecompute(duration float64, totalAmount float64, boqItems int, unresolved []pricing.Lookup)
}

// ExtractionMetricsRecorder records plan-extraction HTTP calls
type ExtractionMetricsRecorder interface {
	RecordExtractionRequest(statusCode int, duration float64)
	RecordExtractionRetry(reason string)
}

// InitRegistry initializes the Prometheus registry.
// Call once at startup when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// WriteTextfile writes the registry in the node-exporter textfile format
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// SetGlobalEstimateCollector sets the global estimate metrics collector
func SetGlobalEstimateCollector(collector EstimateMetricsRecorder) {
	globalEstimateCollector = collector
}

// RecordRecompute records a quote recomputation globally
func RecordRecompute(duration float64, totalAmount float64, boqItems int, unresolved []pricing.Lookup) {
	if globalEstimateCollector != nil {
		globalEstimateCollector.RecordRecompute(duration, totalAmount, boqItems, unresolved)
	}
}

// SetGlobalExtractionCollector sets the global plan-extraction metrics collector
func SetGlobalExtractionCollector(collector ExtractionMetricsRecorder) {
	globalExtractionCollector = collector
}

// RecordExtractionRequest records a plan-extraction request globally
func RecordExtractionRequest(statusCode int, duration float64) {
	if globalExtractionCollector != nil {
		globalExtractionCollector.RecordExtractionRequest(statusCode, duration)
	}
}

// RecordExtractionRetry records a plan-extraction retry globally
func RecordExtractionRetry(reason string) {
	if globalExtractionCollector != nil {
		globalExtractionCollector.RecordExtractionRetry(reason)
	}
}
