package engine

import "time"

const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxResponseSize = 10 << 20
)

// Config holds the per-request limits of a Runtime.
type Config struct {
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	MaxResponseSize int           `env:"MAX_RESPONSE_SIZE" envDefault:"10485760"`
	// Development exposes fault details in 500 responses.
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
	BasePath    string `env:"BASE_PATH"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:  DefaultRequestTimeout,
		MaxResponseSize: DefaultMaxResponseSize,
	}
}

// withDefaults replaces non-positive limits with the defaults.
func (c Config) withDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxResponseSize <= 0 {
		c.MaxResponseSize = DefaultMaxResponseSize
	}
	return c
}
