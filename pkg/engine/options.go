package engine

import (
	"log/slog"

	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStateManager supplies the lifecycle manager. Nil is ignored.
func WithStateManager(m *statemachine.Manager) Option {
	return func(r *Runtime) {
		if m != nil {
			r.state = m
		}
	}
}

// WithTelemetry supplies the telemetry recorder. Nil is ignored.
func WithTelemetry(t *telemetry.Telemetry) Option {
	return func(r *Runtime) {
		if t != nil {
			r.telemetry = t
		}
	}
}

// WithMiddleware appends middleware to the pipeline in order.
func WithMiddleware(mw ...pipeline.Middleware) Option {
	return func(r *Runtime) {
		r.pipeline.Use(mw...)
	}
}

// WithPathGuard replaces the path-safety predicate. Nil is ignored.
func WithPathGuard(safe func(path string) bool) Option {
	return func(r *Runtime) {
		if safe != nil {
			r.pathSafe = safe
		}
	}
}
