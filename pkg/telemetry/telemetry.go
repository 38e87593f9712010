package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/logger"
)

// Snapshot is an immutable view of runtime statistics.
type Snapshot struct {
	TotalRequests   uint64        `json:"total_requests"`
	ActiveRequests  int64         `json:"active_requests"`
	Samples         int           `json:"samples"`
	P50             float64       `json:"p50_ms"`
	P95             float64       `json:"p95_ms"`
	P99             float64       `json:"p99_ms"`
	AvgResponseSize float64       `json:"avg_response_size"`
	HeapAllocBytes  uint64        `json:"heap_alloc_bytes"`
	SysBytes        uint64        `json:"sys_bytes"`
	CPUPercent      float64       `json:"cpu_percent"`
	SchedulerLag    time.Duration `json:"scheduler_lag_ns"`
	Goroutines      int           `json:"goroutines"`
	Uptime          time.Duration `json:"uptime_ns"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Telemetry records request counters and bounded latency/size history.
// It is safe for concurrent use.
type Telemetry struct {
	mu      sync.Mutex
	total   uint64
	active  int64
	samples *ring
	cpu     *cpuSampler

	cached atomic.Pointer[Snapshot]

	probe       *lagProbe
	lagInterval time.Duration
	startedAt   time.Time

	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Telemetry instance. The lag probe is not started until Start.
func New(opts ...Option) *Telemetry {
	t := &Telemetry{
		samples:     newRing(SampleCapacity),
		lagInterval: DefaultLagInterval,
		sink:        NoopSink{},
		logger:      logger.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.startedAt = t.now()
	t.cpu = newCPUSampler(t.startedAt)
	t.probe = newLagProbe(t.lagInterval)
	return t
}

// Start launches the background scheduler-lag probe.
func (t *Telemetry) Start(ctx context.Context) {
	t.probe.start(ctx)
	t.logger.Debug("telemetry probe started", slog.Duration("interval", t.lagInterval))
}

// Stop cancels the background probe. Safe to call repeatedly.
func (t *Telemetry) Stop() {
	t.probe.stop()
}

// ProbeRunning reports whether the lag probe goroutine is active.
func (t *Telemetry) ProbeRunning() bool {
	return t.probe.isRunning()
}

// RequestStart counts a new request and returns its start time.
func (t *Telemetry) RequestStart() time.Time {
	start := t.now()

	t.mu.Lock()
	t.total++
	t.active++
	active := t.active
	t.mu.Unlock()

	t.sink.IncrementCounter(MetricRequestsTotal, 1)
	t.sink.RecordGauge(MetricRequestsActive, float64(active))
	return start
}

// RequestEnd records a completed request started at start that produced
// responseBytes bytes.
func (t *Telemetry) RequestEnd(start time.Time, responseBytes int) {
	d := t.now().Sub(start)
	if d < 0 {
		d = 0
	}

	t.mu.Lock()
	if t.active > 0 {
		t.active--
	}
	active := t.active
	t.samples.push(Sample{DurationMs: float64(d) / float64(time.Millisecond), Bytes: responseBytes})
	t.mu.Unlock()

	t.sink.RecordTiming(MetricRequestDuration, d)
	t.sink.RecordGauge(MetricResponseSize, float64(responseBytes))
	t.sink.RecordGauge(MetricRequestsActive, float64(active))
}

// ActiveRequests returns the live in-flight count without building a
// snapshot.
func (t *Telemetry) ActiveRequests() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SampleCount returns the number of samples currently held.
func (t *Telemetry) SampleCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.samples.len()
}

// GetSnapshot returns the cached snapshot if it is younger than SnapshotTTL
// and rebuilds it otherwise.
func (t *Telemetry) GetSnapshot() Snapshot {
	if s := t.cached.Load(); s != nil && t.now().Sub(s.Timestamp) < SnapshotTTL {
		return *s
	}
	return t.RefreshSnapshot()
}

// RefreshSnapshot rebuilds the snapshot unconditionally and replaces the
// cached copy.
func (t *Telemetry) RefreshSnapshot() Snapshot {
	now := t.now()

	t.mu.Lock()
	total, active := t.total, t.active
	n := t.samples.len()
	avg := t.samples.avgBytes()
	// independent copies: selection reorders its input
	d50 := t.samples.durations()
	d95 := t.samples.durations()
	d99 := t.samples.durations()
	cpu := t.cpu.percent(now)
	t.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := &Snapshot{
		TotalRequests:   total,
		ActiveRequests:  active,
		Samples:         n,
		P50:             Percentile(d50, 50),
		P95:             Percentile(d95, 95),
		P99:             Percentile(d99, 99),
		AvgResponseSize: avg,
		HeapAllocBytes:  ms.HeapAlloc,
		SysBytes:        ms.Sys,
		CPUPercent:      cpu,
		SchedulerLag:    t.probe.lag(),
		Goroutines:      runtime.NumGoroutine(),
		Uptime:          now.Sub(t.startedAt),
		Timestamp:       now,
	}
	t.cached.Store(snap)

	t.sink.IncrementCounter(MetricSnapshotRebuilds, 1)
	t.sink.RecordGauge(MetricMemoryHeap, float64(snap.HeapAllocBytes))
	t.sink.RecordGauge(MetricCPUPercent, snap.CPUPercent)
	t.sink.RecordGauge(MetricSchedulerLag, float64(snap.SchedulerLag)/float64(time.Millisecond))
	return *snap
}
