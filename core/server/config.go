package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key granting full access to the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// JWTSecret verifies bearer tokens carrying read or write roles.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// SyncInterval schedules background passes (0 disables the schedule).
	SyncInterval time.Duration `mapstructure:"sync_interval" default:"0s"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"30s"`
}

// AuthEnabled reports whether any credential is configured.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != "" || c.JWTSecret != ""
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}
