package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "takeoff.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "takeoff"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "takeoff"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Pricing defaults
	if cfg.Pricing.RegionalMultiplier == 0 {
		cfg.Pricing.RegionalMultiplier = 1
	}

	// Plan extraction defaults
	if cfg.PlanExtraction.Timeout == 0 {
		cfg.PlanExtraction.Timeout = 60 * time.Second
	}
	if cfg.PlanExtraction.RateLimit.Requests == 0 {
		cfg.PlanExtraction.RateLimit.Requests = 1
	}
	if cfg.PlanExtraction.RateLimit.Burst == 0 {
		cfg.PlanExtraction.RateLimit.Burst = 2
	}
	if cfg.PlanExtraction.Retry.MaxAttempts == 0 {
		cfg.PlanExtraction.Retry.MaxAttempts = 3
	}
	if cfg.PlanExtraction.Retry.BackoffBase == 0 {
		cfg.PlanExtraction.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.PlanExtraction.CircuitBreaker.FailureThreshold == 0 {
		cfg.PlanExtraction.CircuitBreaker.FailureThreshold = 5
	}
	if cfg.PlanExtraction.CircuitBreaker.CoolDown == 0 {
		cfg.PlanExtraction.CircuitBreaker.CoolDown = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "takeoff.prom"
	}
}
