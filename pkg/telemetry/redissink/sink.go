package redissink

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/logger"
)

// Sink aggregates telemetry events and flushes them to a Writer.
type Sink struct {
	writer Writer
	key    string
	logger *slog.Logger

	mu    sync.Mutex
	incr  map[string]float64
	gauge map[string]float64
}

// Option configures the sink.
type Option func(*Sink)

// WithLogger sets the logger used to report flush errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a sink writing into the hash at key.
func New(w Writer, key string, opts ...Option) *Sink {
	s := &Sink{
		writer: w,
		key:    key,
		logger: logger.NewNop(),
		incr:   make(map[string]float64),
		gauge:  make(map[string]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) IncrementCounter(name string, delta float64) {
	s.mu.Lock()
	s.incr[name] += delta
	s.mu.Unlock()
}

func (s *Sink) RecordTiming(name string, d time.Duration) {
	s.mu.Lock()
	s.incr[name+"_count"]++
	s.incr[name+"_sum_ms"] += float64(d) / float64(time.Millisecond)
	s.mu.Unlock()
}

func (s *Sink) RecordGauge(name string, value float64) {
	s.mu.Lock()
	s.gauge[name] = value
	s.mu.Unlock()
}

// Pending returns a copy of the values waiting for the next flush.
func (s *Sink) Pending() (incr map[string]float64, gauges map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.incr), maps.Clone(s.gauge)
}

// Flush writes pending values. On failure the increments are merged back so
// they are retried by the next flush; gauges keep their newest value.
func (s *Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	if len(s.incr) == 0 && len(s.gauge) == 0 {
		s.mu.Unlock()
		return nil
	}
	incr, gauge := s.incr, s.gauge
	s.incr = make(map[string]float64)
	s.gauge = make(map[string]float64)
	s.mu.Unlock()

	if err := s.writer.Write(ctx, s.key, incr, gauge); err != nil {
		s.mu.Lock()
		for k, v := range incr {
			s.incr[k] += v
		}
		for k, v := range gauge {
			if _, newer := s.gauge[k]; !newer {
				s.gauge[k] = v
			}
		}
		s.mu.Unlock()
		return errors.Join(ErrFlush, err)
	}
	return nil
}

// DefaultFlushInterval is used by Run when interval is not positive.
const DefaultFlushInterval = 10 * time.Second

// Run flushes every interval until ctx is done.
func (s *Sink) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.WarnContext(ctx, "telemetry flush failed", logger.Error(err))
			}
		}
	}
}

// Close performs a final flush.
func (s *Sink) Close(ctx context.Context) error {
	return s.Flush(ctx)
}
