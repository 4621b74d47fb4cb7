package logger

// Config defines the logging configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoder: console or json.
	Format string `mapstructure:"format" default:"console"`
}
