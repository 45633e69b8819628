package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" default:"info"`
	// Format is json or console.
	Format string `mapstructure:"format" default:"json"`
	// Service is attached to every line as the "service" field.
	Service string `mapstructure:"service" default:"store-ops"`
}
