package config

// MetricsConfig holds metrics collection configuration.
// Metrics are written in the node-exporter textfile format when the command exits.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath is where the .prom file is written
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
