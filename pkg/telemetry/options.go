package telemetry

import (
	"log/slog"
	"time"
)

// Option configures Telemetry.
type Option func(*Telemetry)

// WithSink sets the event sink. Nil is ignored.
func WithSink(s Sink) Option {
	return func(t *Telemetry) {
		if s != nil {
			t.sink = s
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Telemetry) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Telemetry) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLagInterval sets the scheduler-lag probe interval. A non-positive value
// disables the probe.
func WithLagInterval(d time.Duration) Option {
	return func(t *Telemetry) {
		t.lagInterval = d
	}
}
