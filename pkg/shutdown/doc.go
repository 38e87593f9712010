// Package shutdown drives the draining stop of a runtime.
//
// Coordinator.Shutdown moves the lifecycle to DRAINING, tells the ingress to
// stop accepting connections, and polls telemetry every 100ms until no
// requests are in flight or the timeout passes. It then stops the telemetry
// probe and moves the lifecycle to STOPPING.
//
// The sequence runs once per Coordinator. Concurrent callers wait for the
// same run, and later callers get the stored Result:
//
//	res := coord.Shutdown(ctx, "SIGTERM", cfg.Timeout)
//	if !res.Drained {
//	    log.Warn("forced shutdown", "active", res.ActiveRequests)
//	}
package shutdown
