package shutdown

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

// Ingress is the transport side that can refuse new connections.
type Ingress interface {
	StopAccepting()
}

// IngressFunc adapts a function to the Ingress interface.
type IngressFunc func()

// StopAccepting implements Ingress.
func (f IngressFunc) StopAccepting() { f() }

// Result is the outcome of a shutdown sequence.
type Result struct {
	Drained        bool `json:"drained"`
	ActiveRequests int  `json:"active_requests"`
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithIngress sets the ingress told to stop accepting. Nil is ignored.
func WithIngress(i Ingress) Option {
	return func(c *Coordinator) {
		if i != nil {
			c.ingress = i
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// Coordinator runs the shutdown sequence at most once.
type Coordinator struct {
	state     *statemachine.Manager
	telemetry *telemetry.Telemetry
	ingress   Ingress
	logger    *slog.Logger

	once   sync.Once
	done   chan struct{}
	result Result
}

// New creates a Coordinator for the given state manager and telemetry.
func New(state *statemachine.Manager, tel *telemetry.Telemetry, opts ...Option) *Coordinator {
	c := &Coordinator{
		state:     state,
		telemetry: tel,
		logger:    logger.NewNop(),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shutdown runs the sequence on first call and returns its Result to every
// caller. Callers arriving while it runs block until it finishes. Cancelling
// ctx ends the drain wait early, as a timeout does.
func (c *Coordinator) Shutdown(ctx context.Context, signal string, timeout time.Duration) Result {
	c.once.Do(func() {
		defer close(c.done)
		c.result = c.run(ctx, signal, timeout)
	})
	return c.result
}

// Done is closed once the sequence has finished.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Result returns the stored result and whether the sequence has finished.
func (c *Coordinator) Result() (Result, bool) {
	select {
	case <-c.done:
		return c.result, true
	default:
		return Result{}, false
	}
}

func (c *Coordinator) run(ctx context.Context, signal string, timeout time.Duration) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	log := c.logger.With(logger.Component("shutdown"), logger.Signal(signal))
	log.InfoContext(ctx, "shutdown initiated", logger.Duration(timeout))

	var res Result
	if err := c.state.TransitionE(statemachine.Draining); err != nil {
		active := c.activeRequests()
		res = Result{Drained: active == 0, ActiveRequests: active}
		log.WarnContext(ctx, "drain skipped",
			logger.State(c.state.Current().String()),
			slog.Int("active_requests", active),
			logger.Error(err),
		)
	} else {
		if c.ingress != nil {
			c.ingress.StopAccepting()
		}
		res = c.drain(ctx, timeout)
		if res.Drained {
			log.InfoContext(ctx, "drained", logger.Duration(time.Since(started)))
		} else {
			log.WarnContext(ctx, "drain timed out", slog.Int("active_requests", res.ActiveRequests))
		}
	}

	c.telemetry.Stop()
	if err := c.state.TransitionE(statemachine.Stopping); err != nil {
		log.WarnContext(ctx, "final transition rejected", logger.Error(err))
	}
	log.InfoContext(ctx, "shutdown complete",
		slog.Bool("drained", res.Drained),
		logger.Duration(time.Since(started)),
	)
	return res
}

// drain polls until no requests are active, the timeout passes, or ctx is
// done.
func (c *Coordinator) drain(ctx context.Context, timeout time.Duration) Result {
	if c.quiescent() {
		return Result{Drained: true}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if c.quiescent() {
				return Result{Drained: true}
			}
		case <-deadline.C:
			return Result{ActiveRequests: c.activeRequests()}
		case <-ctx.Done():
			return Result{ActiveRequests: c.activeRequests()}
		}
	}
}

func (c *Coordinator) quiescent() bool {
	return c.telemetry.GetSnapshot().ActiveRequests == 0
}

func (c *Coordinator) activeRequests() int {
	return int(c.telemetry.ActiveRequests())
}
