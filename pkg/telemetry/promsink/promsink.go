// Package promsink exports telemetry events as Prometheus metrics.
//
// Counters, timings and gauges are created lazily the first time a metric name
// is seen. Timings become histograms in seconds.
//
//	sink := promsink.New(prometheus.DefaultRegisterer, promsink.WithNamespace("reqkit"))
//	tm := telemetry.New(telemetry.WithSink(sink))
package promsink

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var defaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Option configures the sink.
type Option func(*Sink)

// WithNamespace sets the metric namespace. Default "reqkit".
func WithNamespace(ns string) Option {
	return func(s *Sink) { s.namespace = ns }
}

// WithBuckets overrides the histogram buckets used for timings.
func WithBuckets(b []float64) Option {
	return func(s *Sink) {
		if len(b) > 0 {
			s.buckets = b
		}
	}
}

// Sink is a telemetry.Sink backed by Prometheus collectors.
type Sink struct {
	reg       prometheus.Registerer
	namespace string
	buckets   []float64

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	histograms map[string]prometheus.Histogram
	gauges     map[string]prometheus.Gauge
}

// New creates a sink registering collectors with reg.
func New(reg prometheus.Registerer, opts ...Option) *Sink {
	s := &Sink{
		reg:        reg,
		namespace:  "reqkit",
		buckets:    defaultBuckets,
		counters:   make(map[string]prometheus.Counter),
		histograms: make(map[string]prometheus.Histogram),
		gauges:     make(map[string]prometheus.Gauge),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) IncrementCounter(name string, delta float64) {
	if delta < 0 {
		return
	}
	s.counter(name).Add(delta)
}

func (s *Sink) RecordTiming(name string, d time.Duration) {
	s.histogram(name).Observe(d.Seconds())
}

func (s *Sink) RecordGauge(name string, value float64) {
	s.gauge(name).Set(value)
}

func (s *Sink) counter(name string) prometheus.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: s.namespace,
		Name:      sanitize(name),
		Help:      "Counter " + name,
	})
	c = register(s.reg, c)
	s.counters[name] = c
	return c
}

func (s *Sink) histogram(name string) prometheus.Histogram {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.histograms[name]; ok {
		return h
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: s.namespace,
		Name:      sanitize(name) + "_seconds",
		Help:      "Timing " + name,
		Buckets:   s.buckets,
	})
	h = register(s.reg, h)
	s.histograms[name] = h
	return h
}

func (s *Sink) gauge(name string) prometheus.Gauge {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.gauges[name]; ok {
		return g
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: s.namespace,
		Name:      sanitize(name),
		Help:      "Gauge " + name,
	})
	g = register(s.reg, g)
	s.gauges[name] = g
	return g
}

// register registers c, reusing an already registered collector of the same
// type when one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			return r
		default:
			return '_'
		}
	}, name)
}
