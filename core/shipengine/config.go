package shipengine

import (
	"time"

	"shipment-gateway/core/resilience"
)

// Config holds settings for the ShipEngine API client.
type Config struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://api.shipengine.com/v1"`
	// APIKey is sent in the API-Key header.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CarrierCacheTTL is how long the carrier list is reused.
	CarrierCacheTTL time.Duration `mapstructure:"carrier_cache_ttl" default:"60m"`
	// Breaker configures the circuit breaker around every call.
	Breaker resilience.Config `mapstructure:"breaker"`
}
