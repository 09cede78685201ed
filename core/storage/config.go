package storage

// Config holds configuration for the snapshot object store.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket receives mirror snapshots.
	Bucket string `mapstructure:"bucket" default:"shipment-snapshots"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Prefix is prepended to snapshot object names.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
	// Retain is how many snapshots are kept (0 keeps all).
	Retain int `mapstructure:"retain" default:"7"`
}
