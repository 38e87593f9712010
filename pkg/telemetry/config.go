package telemetry

import "time"

const (
	// SampleCapacity is the number of most recent requests kept for statistics.
	SampleCapacity = 1000
	// SnapshotTTL is how long a built snapshot is reused by GetSnapshot.
	SnapshotTTL = 100 * time.Millisecond
	// DefaultLagInterval is the default scheduler-lag probe interval.
	DefaultLagInterval = 500 * time.Millisecond
)

// Config holds environment-driven telemetry settings.
type Config struct {
	LagInterval    time.Duration `env:"TELEMETRY_LAG_INTERVAL" envDefault:"500ms"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
}
