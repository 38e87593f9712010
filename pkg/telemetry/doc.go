// Package telemetry keeps bounded-memory request statistics for the runtime.
//
// Telemetry counts total and in-flight requests, keeps the last 1000 request
// samples (duration and response size) in a ring, and builds Snapshot values
// with p50/p95/p99 latency, memory, CPU and scheduler-lag readings.
//
// # Snapshots
//
// GetSnapshot returns a cached snapshot when it is younger than 100ms and
// rebuilds it otherwise, which absorbs bursts of health-check polling.
// RefreshSnapshot always rebuilds. A rebuilt snapshot replaces the cached one
// with a single atomic pointer swap, so readers never see a partially
// updated value.
//
// Percentiles are computed with quickselect. Each of the three percentiles
// runs against its own fresh copy of the durations because selection reorders
// its input.
//
// # Background probe
//
// Start launches a goroutine that measures scheduler lag by comparing actual
// and expected ticker spacing. It is best-effort monitoring: Stop cancels it
// and it never blocks shutdown.
//
// # Sinks
//
// Every event is forwarded synchronously to a Sink. The default sink is a
// no-op; see the promsink, otelsink, redissink and logsink subpackages for
// exporters.
//
// # Usage
//
//	tm := telemetry.New(telemetry.WithSink(promsink.New(prometheus.DefaultRegisterer)))
//	tm.Start(ctx)
//	defer tm.Stop()
//
//	start := tm.RequestStart()
//	// ... handle ...
//	tm.RequestEnd(start, len(body))
//
//	snap := tm.GetSnapshot()
//	fmt.Println(snap.P95, snap.ActiveRequests)
package telemetry
