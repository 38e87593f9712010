package telemetry

import "time"

// Metric names forwarded to sinks.
const (
	MetricRequestsTotal    = "requests_total"
	MetricRequestsActive   = "requests_active"
	MetricRequestDuration  = "request_duration"
	MetricResponseSize     = "response_size_bytes"
	MetricMemoryHeap       = "memory_heap_bytes"
	MetricCPUPercent       = "cpu_percent"
	MetricSchedulerLag     = "scheduler_lag_ms"
	MetricSnapshotRebuilds = "snapshot_rebuilds_total"
)

// Sink receives telemetry events synchronously. Implementations must be fast
// and must not block; exporters that talk to the network should buffer.
type Sink interface {
	IncrementCounter(name string, delta float64)
	RecordTiming(name string, d time.Duration)
	RecordGauge(name string, value float64)
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) IncrementCounter(string, float64)   {}
func (NoopSink) RecordTiming(string, time.Duration) {}
func (NoopSink) RecordGauge(string, float64)        {}

// MultiSink fans every event out to all of its sinks in order.
type MultiSink []Sink

func (m MultiSink) IncrementCounter(name string, delta float64) {
	for _, s := range m {
		s.IncrementCounter(name, delta)
	}
}

func (m MultiSink) RecordTiming(name string, d time.Duration) {
	for _, s := range m {
		s.RecordTiming(name, d)
	}
}

func (m MultiSink) RecordGauge(name string, value float64) {
	for _, s := range m {
		s.RecordGauge(name, value)
	}
}
