package logger

// Config holds logging settings.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" default:"info"`
	// Format is json or console.
	Format string `mapstructure:"format" default:"json"`
}
