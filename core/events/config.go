package events

// Config holds settings for domain event publishing.
type Config struct {
	// Brokers lists kafka brokers. Publishing is disabled when empty.
	Brokers []string `mapstructure:"brokers" default:""`
	// Topic receives every shipment event.
	Topic string `mapstructure:"topic" default:"shipment-gateway.events"`
	// WriteTimeoutSeconds bounds a single publish.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"5"`
}

// Enabled reports whether at least one broker is configured.
func (c Config) Enabled() bool {
	for _, b := range c.Brokers {
		if b != "" {
			return true
		}
	}
	return false
}
