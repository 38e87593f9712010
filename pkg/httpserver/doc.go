// Package httpserver is the network ingress for the runtime.
//
// Server wraps net/http with an owned listener, configurable timeouts and
// structured logging. It separates the two halves of a
// graceful stop:
//
//   - StopAccepting closes the listener and disables keep-alives. Requests
//     already being served run to completion. The shutdown coordinator calls
//     it when the runtime starts draining.
//   - Close calls http.Server.Shutdown with the configured timeout once the
//     drain is over.
//
// Adapter converts each *http.Request into an immutable envelope (header
// names folded, body read up to a limit, request ID resolved, client IP put
// in the context), passes it to a Handler such as *engine.Runtime, and writes
// the returned response.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	mux.Handle("/*", httpserver.NewAdapter(rt, httpserver.WithMaxBodySize(cfg.MaxBodySize)))
//	go srv.Run(ctx, mux)
//
// HealthCheckHandler provides liveness and readiness probes that answer even
// when the runtime refuses traffic.
//
// Errors are wrapped with ErrStart and ErrShutdown and can be inspected with
// errors.Is.
package httpserver
