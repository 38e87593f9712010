// Package otelsink exports telemetry events through an OpenTelemetry meter.
//
// Counters map to Float64Counter, timings to a Float64Histogram in
// milliseconds and gauges to Float64Gauge. Instruments are created lazily per
// metric name.
//
//	sink := otelsink.New(otel.Meter("reqkit"))
//	tm := telemetry.New(telemetry.WithSink(sink))
package otelsink

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Sink is a telemetry.Sink backed by an OpenTelemetry meter.
type Sink struct {
	meter  metric.Meter
	prefix string

	mu         sync.Mutex
	counters   map[string]metric.Float64Counter
	histograms map[string]metric.Float64Histogram
	gauges     map[string]metric.Float64Gauge
	onError    func(error)
}

// Option configures the sink.
type Option func(*Sink)

// WithPrefix prepends prefix and a dot to every instrument name.
func WithPrefix(prefix string) Option {
	return func(s *Sink) { s.prefix = prefix }
}

// WithErrorHandler receives instrument creation errors. By default they are
// dropped and the event is skipped.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Sink) {
		if fn != nil {
			s.onError = fn
		}
	}
}

// New creates a sink on meter.
func New(meter metric.Meter, opts ...Option) *Sink {
	s := &Sink{
		meter:      meter,
		prefix:     "reqkit",
		counters:   make(map[string]metric.Float64Counter),
		histograms: make(map[string]metric.Float64Histogram),
		gauges:     make(map[string]metric.Float64Gauge),
		onError:    func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) instrumentName(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "." + name
}

func (s *Sink) IncrementCounter(name string, delta float64) {
	if delta < 0 {
		return
	}
	s.mu.Lock()
	c, ok := s.counters[name]
	if !ok {
		var err error
		c, err = s.meter.Float64Counter(s.instrumentName(name))
		if err != nil {
			s.mu.Unlock()
			s.onError(err)
			return
		}
		s.counters[name] = c
	}
	s.mu.Unlock()
	c.Add(context.Background(), delta)
}

func (s *Sink) RecordTiming(name string, d time.Duration) {
	s.mu.Lock()
	h, ok := s.histograms[name]
	if !ok {
		var err error
		h, err = s.meter.Float64Histogram(s.instrumentName(name), metric.WithUnit("ms"))
		if err != nil {
			s.mu.Unlock()
			s.onError(err)
			return
		}
		s.histograms[name] = h
	}
	s.mu.Unlock()
	h.Record(context.Background(), float64(d)/float64(time.Millisecond))
}

func (s *Sink) RecordGauge(name string, value float64) {
	s.mu.Lock()
	g, ok := s.gauges[name]
	if !ok {
		var err error
		g, err = s.meter.Float64Gauge(s.instrumentName(name))
		if err != nil {
			s.mu.Unlock()
			s.onError(err)
			return
		}
		s.gauges[name] = g
	}
	s.mu.Unlock()
	g.Record(context.Background(), value)
}
