// Package config provides configuration management for the shipment gateway.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live on the section structs as `default`
// tags and are registered by reflection.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, JWT secret, sync schedule
//   - Log: Logging level and format
//   - Database: mirror driver and connection details
//   - Storage: S3/MinIO credentials, snapshot bucket and retention
//   - ShipEngine: API root, key, timeouts, carrier cache TTL, circuit breaker
//   - Sync: page size, concurrency, staleness window, mode
//   - Events: kafka brokers and topic
//
// Environment keys replace dots with underscores, e.g. SYNC_STALENESS_WINDOW.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
