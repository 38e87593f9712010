package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/async"
	"github.com/dmitrymomot/reqkit/pkg/classify"
	"github.com/dmitrymomot/reqkit/pkg/envelope"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
	"github.com/dmitrymomot/reqkit/pkg/router"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

// Runtime gates, routes, times and measures requests. It is safe for
// concurrent use once New returns.
type Runtime struct {
	cfg        Config
	state      *statemachine.Manager
	telemetry  *telemetry.Telemetry
	router     *router.Router[HandlerName]
	pipeline   *pipeline.Pipeline
	handlers   Handlers
	classifier classify.Classifier
	pathSafe   func(string) bool
	logger     *slog.Logger
}

// New builds a Runtime. Every route is registered up front and must name a
// handler present in handlers.
func New(cfg Config, routes []Route, handlers Handlers, opts ...Option) (*Runtime, error) {
	cfg = cfg.withDefaults()

	r := &Runtime{
		cfg:        cfg,
		router:     router.New[HandlerName](),
		pipeline:   pipeline.New(),
		handlers:   make(Handlers, len(handlers)),
		classifier: classify.New(cfg.BasePath),
		pathSafe:   classify.IsPathSafe,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.state == nil {
		r.state = statemachine.New(statemachine.WithLogger(r.logger))
	}
	if r.telemetry == nil {
		r.telemetry = telemetry.New(telemetry.WithLogger(r.logger))
	}

	for name, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilHandler, name)
		}
		r.handlers[name] = h
	}

	for _, rt := range routes {
		if _, ok := r.handlers[rt.Handler]; !ok {
			return nil, fmt.Errorf("%w: %s %s -> %q", ErrUnknownHandler, rt.Method, rt.Pattern, rt.Handler)
		}
		if err := r.router.Register(rt.Method, rt.Pattern, rt.Handler); err != nil {
			return nil, errors.Join(ErrInvalidRoute, err)
		}
	}

	return r, nil
}

// Start begins telemetry probing and moves the runtime to READY.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.state.TransitionE(statemachine.Ready); err != nil {
		return err
	}
	r.telemetry.Start(ctx)
	r.logger.InfoContext(ctx, "runtime ready",
		slog.Int("routes", len(r.router.Routes())),
		slog.Int("middleware", r.pipeline.Len()),
	)
	return nil
}

// Stop cancels background telemetry work. It does not change state; use the
// shutdown coordinator for an orderly stop.
func (r *Runtime) Stop() {
	r.telemetry.Stop()
}

// State returns the lifecycle manager.
func (r *Runtime) State() *statemachine.Manager { return r.state }

// Telemetry returns the telemetry recorder.
func (r *Runtime) Telemetry() *telemetry.Telemetry { return r.telemetry }

// Config returns the effective configuration.
func (r *Runtime) Config() Config { return r.cfg }

// Handle processes one request and always returns a response.
func (r *Runtime) Handle(ctx context.Context, env envelope.Envelope) response.Response {
	if ctx == nil {
		ctx = context.Background()
	}
	class := r.classifier.Classify(env)

	if !r.state.CanAcceptRequests() {
		state := r.state.Current()
		return response.ErrorWithMessage(response.ErrServiceUnavailable, class.Expects,
			"service unavailable: "+state.String()).
			WithHeader("X-Runtime-State", state.String())
	}

	start := r.telemetry.RequestStart()
	size := 0
	defer func() { r.telemetry.RequestEnd(start, size) }()

	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(context.Canceled)

	future := async.Run(reqCtx, func(ctx context.Context) (response.Response, error) {
		return r.handleInternal(ctx, env, class)
	})

	timer := time.NewTimer(r.cfg.RequestTimeout)
	defer timer.Stop()

	var resp response.Response
	select {
	case <-future.Done():
		out, err := future.Await()
		switch {
		case err == nil:
			resp = out
		case callerGone(ctx, err):
			r.logger.DebugContext(ctx, "request cancelled by caller",
				logger.RequestID(env.ID()),
				slog.String("path", env.Path()),
				logger.Error(err),
			)
			resp = response.ErrorWithMessage(response.ErrClientClosedRequest, class.Expects, "client closed request")
		default:
			resp = r.fault(ctx, env, class, err)
		}
	case <-timer.C:
		cancel(ErrDeadlineExceeded)
		r.logger.WarnContext(ctx, "request deadline exceeded",
			logger.RequestID(env.ID()),
			slog.String("path", env.Path()),
			logger.Duration(r.cfg.RequestTimeout),
		)
		resp = response.ErrorWithMessage(response.ErrGatewayTimeout, class.Expects, "request timed out")
	}

	if resp.Size() > r.cfg.MaxResponseSize {
		r.logger.WarnContext(ctx, "response too large",
			logger.RequestID(env.ID()),
			slog.Int("size", resp.Size()),
			slog.Int("limit", r.cfg.MaxResponseSize),
		)
		resp = response.Error(response.ErrPayloadTooLarge, class.Expects)
	}

	size = resp.Size()
	return resp
}

// handleInternal validates, routes and dispatches through the pipeline.
func (r *Runtime) handleInternal(ctx context.Context, env envelope.Envelope, class classify.Classification) (response.Response, error) {
	if !r.pathSafe(env.Path()) {
		return response.Error(response.ErrBadRequest, class.Expects), nil
	}

	match, ok := r.router.Match(env.Method(), class.PathInfo)
	if !ok {
		return response.Error(response.ErrNotFound, class.Expects), nil
	}

	rc := pipeline.NewRequestContext(ctx, env, class, match.Pattern, match.Params)
	return r.pipeline.Handle(pipeline.NewContext(rc), r.dispatch(match.Handler))
}

// dispatch returns the terminal step for name. New guarantees every routed
// name has a handler; the 404 branch only guards against that invariant
// being broken.
func (r *Runtime) dispatch(name HandlerName) pipeline.Next {
	return func(c *pipeline.Context) (response.Response, error) {
		h, ok := r.handlers[name]
		if !ok {
			r.logger.ErrorContext(c.Context(), "routed to unknown handler", logger.Handler(string(name)))
			return response.Error(response.ErrNotFound, c.Classification().Expects), nil
		}
		return h.Serve(c)
	}
}

// callerGone reports whether err is the parent context's own cancellation
// surfacing through the handler rather than a handler fault.
func callerGone(parent context.Context, err error) bool {
	if parent.Err() == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// fault converts a handler error or panic into a 500.
func (r *Runtime) fault(ctx context.Context, env envelope.Envelope, class classify.Classification, err error) response.Response {
	attrs := []any{logger.RequestID(env.ID()), slog.String("path", env.Path()), logger.Error(err)}

	var perr *async.PanicError
	isPanic := errors.As(err, &perr)
	if isPanic {
		attrs = append(attrs, slog.String("stack", string(perr.Stack)))
	}
	r.logger.ErrorContext(ctx, "request failed", attrs...)

	if !r.cfg.Development {
		return response.Error(response.ErrInternalServerError, class.Expects)
	}

	msg := err.Error()
	if isPanic && class.Expects != response.FormatJSON {
		msg += "\n\n" + string(perr.Stack)
	}
	return response.ErrorWithMessage(response.ErrInternalServerError, class.Expects, msg)
}
