package config

import "time"

// PlanExtractionConfig holds the plan-extraction service client configuration
type PlanExtractionConfig struct {
	// Base URL of the extraction service; empty disables plan import
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	APIKey string `mapstructure:"api_key"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Retry          RetryConfig          `mapstructure:"retry"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// Enabled reports whether a service URL is configured
func (c PlanExtractionConfig) Enabled() bool {
	return c.BaseURL != ""
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests float64 `mapstructure:"requests" validate:"gt=0"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CircuitBreakerConfig holds the breaker thresholds
type CircuitBreakerConfig struct {
	// Consecutive failures before the breaker opens
	FailureThreshold int `mapstructure:"failure_threshold" validate:"min=1"`

	// Time the breaker stays open before a trial call
	CoolDown time.Duration `mapstructure:"cool_down"`
}
