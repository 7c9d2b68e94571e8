package config

// PricingConfig selects the regional price level applied to the catalog
type PricingConfig struct {
	// Region code looked up in the regions table when a quote names none
	Region string `mapstructure:"region"`

	// Multiplier used when no region is configured or the region is unknown
	RegionalMultiplier float64 `mapstructure:"regional_multiplier" validate:"gt=0"`
}
