// Package engine is the request-lifecycle runtime.
//
// A Runtime composes the lifecycle state machine, the router, the middleware
// pipeline and telemetry. Handle is the single entry point for an ingress:
//
//  1. requests are refused with 503 unless the state accepts traffic;
//  2. accepted requests are counted by telemetry;
//  3. routing, middleware and the named handler run in their own goroutine,
//     raced against the request deadline;
//  4. oversized responses are replaced with 413;
//  5. handler errors and panics become a generic 500.
//
// The deadline is cooperative. When it fires, the handler's context is
// cancelled with ErrDeadlineExceeded as its cause and the client receives 504,
// but the handler goroutine is not stopped; whatever it eventually returns is
// dropped.
//
// Handlers are looked up by HandlerName. New rejects a route whose handler is
// missing from the table, so dispatch never sees an unknown name at runtime.
//
//	rt, err := engine.New(cfg,
//	    []engine.Route{{Method: "GET", Pattern: "/", Handler: "home"}},
//	    engine.Handlers{"home": engine.HandlerFunc(home)},
//	    engine.WithMiddleware(requestid.Middleware()),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := rt.Start(ctx); err != nil {
//	    return err
//	}
//	resp := rt.Handle(ctx, env)
package engine
