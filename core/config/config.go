package config

import (
	"fmt"
	"reflect"
	"strings"

	"shipment-gateway/core/database"
	"shipment-gateway/core/events"
	"shipment-gateway/core/logger"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/core/server"
	"shipment-gateway/core/shipengine"
	"shipment-gateway/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the mirror database.
	Database database.Config `mapstructure:"database"`
	// ShipEngine holds configuration for the carrier API client.
	ShipEngine shipengine.Config `mapstructure:"shipengine"`
	// Sync holds reconciliation settings.
	Sync reconcile.Config `mapstructure:"sync"`
	// Events holds domain event publishing settings.
	Events events.Config `mapstructure:"events"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite,
		database.DriverMongo, database.DriverMemory:
	default:
		return fmt.Errorf("database: unsupported driver %q", c.Database.Driver)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Recurse into nested structs; time.Duration is an int64 and stays a leaf.
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
