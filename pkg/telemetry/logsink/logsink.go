// Package logsink writes telemetry events to a slog.Logger at debug level.
// It is meant for local development where no metrics backend is running.
package logsink

import (
	"context"
	"log/slog"
	"time"
)

// Sink is a telemetry.Sink that logs every event.
type Sink struct {
	log   *slog.Logger
	level slog.Level
}

// New creates a sink writing to log at debug level.
func New(log *slog.Logger) *Sink {
	return &Sink{log: log, level: slog.LevelDebug}
}

// WithLevel returns a copy of s logging at level.
func (s *Sink) WithLevel(level slog.Level) *Sink {
	return &Sink{log: s.log, level: level}
}

func (s *Sink) IncrementCounter(name string, delta float64) {
	s.log.Log(context.Background(), s.level, "telemetry counter",
		slog.String("metric", name), slog.Float64("delta", delta))
}

func (s *Sink) RecordTiming(name string, d time.Duration) {
	s.log.Log(context.Background(), s.level, "telemetry timing",
		slog.String("metric", name), slog.Duration("duration", d))
}

func (s *Sink) RecordGauge(name string, value float64) {
	s.log.Log(context.Background(), s.level, "telemetry gauge",
		slog.String("metric", name), slog.Float64("value", value))
}
