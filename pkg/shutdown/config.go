package shutdown

import "time"

// PollInterval is how often the coordinator checks for in-flight requests.
const PollInterval = 100 * time.Millisecond

// Config holds environment-driven shutdown settings.
type Config struct {
	Timeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
