package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/reqkit/cmd/reqkit/internal/handlers"
	"github.com/dmitrymomot/reqkit/pkg/clientip"
	"github.com/dmitrymomot/reqkit/pkg/config"
	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/environment"
	"github.com/dmitrymomot/reqkit/pkg/httpserver"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
	"github.com/dmitrymomot/reqkit/pkg/shutdown"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
	"github.com/dmitrymomot/reqkit/pkg/telemetry/logsink"
	"github.com/dmitrymomot/reqkit/pkg/telemetry/otelsink"
	"github.com/dmitrymomot/reqkit/pkg/telemetry/promsink"
	"github.com/dmitrymomot/reqkit/pkg/telemetry/redissink"
)

const (
	redisCloseTimeout = 2 * time.Second
	otelCloseTimeout  = 5 * time.Second
	meterName         = "github.com/dmitrymomot/reqkit"
)

var (
	errNotDrained = errors.New("shutdown finished with requests still in flight")
	errNotReady   = errors.New("runtime is not ready")
	errNotAlive   = errors.New("runtime is stopping")
)

type serveConfig struct {
	Logger    logger.Config
	Engine    engine.Config
	HTTP      httpserver.Config
	Shutdown  shutdown.Config
	Telemetry telemetry.Config
	Redis     redissink.Config
	OTel      otelConfig
}

func loadServeConfig() (serveConfig, error) {
	var cfg serveConfig
	err := errors.Join(
		config.Load(&cfg.Logger),
		config.Load(&cfg.Engine),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.Shutdown),
		config.Load(&cfg.Telemetry),
		config.Load(&cfg.Redis),
		config.Load(&cfg.OTel),
	)
	return cfg, err
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg serveConfig) error {
	env := environment.Parse(cfg.Logger.Env)

	log, err := logger.NewFromConfig(cfg.Logger,
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sinks := telemetry.MultiSink{logsink.New(log.With(logger.Component("telemetry")))}
	if cfg.Telemetry.MetricsEnabled {
		sinks = append(sinks, promsink.New(reg))

		mp, err := newMeterProvider(ctx, cfg.OTel, cfg.Logger.Service, os.Stdout)
		if err != nil {
			return err
		}
		if mp != nil {
			otel.SetMeterProvider(mp)
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), otelCloseTimeout)
				defer cancel()
				if err := mp.Shutdown(closeCtx); err != nil {
					log.Warn("otel meter provider shutdown failed", logger.Error(err))
				}
			}()
			sinks = append(sinks, otelsink.New(otel.Meter(meterName), otelsink.WithErrorHandler(func(err error) {
				log.Warn("otel instrument", logger.Error(err))
			})))
		}
	}

	var (
		redisClient *redis.Client
		redisSink   *redissink.Sink
	)
	if cfg.Redis.URL != "" {
		redisClient, err = redissink.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		redisSink = redissink.New(redissink.NewRedisWriter(redisClient), cfg.Redis.Key,
			redissink.WithLogger(log.With(logger.Component("redissink"))))
		sinks = append(sinks, redisSink)
	}

	state := statemachine.New(statemachine.WithLogger(log.With(logger.Component("state"))))
	tel := telemetry.New(
		telemetry.WithSink(sinks),
		telemetry.WithLagInterval(cfg.Telemetry.LagInterval),
		telemetry.WithLogger(log.With(logger.Component("telemetry"))),
	)
	cfg.Engine.Development = cfg.Engine.Development || env.IsDevelopment()

	rt, err := engine.New(cfg.Engine, handlers.Routes(),
		handlers.Table(handlers.Deps{State: state, Telemetry: tel, Version: version, StartedAt: time.Now()}),
		engine.WithLogger(log.With(logger.Component("engine"))),
		engine.WithStateManager(state),
		engine.WithTelemetry(tel),
		engine.WithMiddleware(
			requestid.Middleware(),
			clientip.Middleware(),
			pipeline.AccessLog(log.With(logger.Component("access"))),
		),
	)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log.With(logger.Component("httpserver"))),
		httpserver.WithServer(&http.Server{
			BaseContext: func(net.Listener) context.Context {
				return environment.WithContext(context.Background(), env)
			},
		}),
	)
	coord := shutdown.New(state, tel,
		shutdown.WithIngress(srv),
		shutdown.WithLogger(log.With(logger.Component("shutdown"))),
	)

	mux := newMux(log, state, reg, httpserver.NewAdapter(rt,
		httpserver.WithMaxBodySize(cfg.HTTP.MaxBodySize),
		httpserver.WithAdapterLogger(log.With(logger.Component("adapter"))),
	))

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	if err := rt.Start(runCtx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return srv.Run(gctx, mux)
	})
	if redisSink != nil {
		g.Go(func() error {
			redisSink.Run(gctx, cfg.Redis.FlushInterval)
			return nil
		})
	}
	g.Go(func() error {
		sig := waitForSignal(gctx)
		res := coord.Shutdown(context.Background(), sig, cfg.Shutdown.Timeout)

		closeErr := srv.Close(context.Background())
		cancelRun()

		if !res.Drained {
			log.Warn("shutdown incomplete", slog.Int("active_requests", res.ActiveRequests))
			return errors.Join(errNotDrained, closeErr)
		}
		return closeErr
	})

	err = g.Wait()

	if redisSink != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), redisCloseTimeout)
		defer cancel()
		if ferr := redisSink.Close(flushCtx); ferr != nil {
			log.Warn("final telemetry flush failed", logger.Error(ferr))
		}
	}
	return err
}

// newMux mounts the health checks and the metrics endpoint next to the runtime
// adapter, which takes every other path.
func newMux(log *slog.Logger, state *statemachine.Manager, reg *prometheus.Registry, runtime http.Handler) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Get("/livez", httpserver.HealthCheckHandler(log, func(context.Context) error {
		if !state.IsAlive() {
			return errNotAlive
		}
		return nil
	}))
	mux.Get("/readyz", httpserver.HealthCheckHandler(log, func(context.Context) error {
		if !state.IsReady() {
			return errNotReady
		}
		return nil
	}))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/*", runtime)
	return mux
}

// waitForSignal blocks until SIGINT or SIGTERM arrives or ctx is done and
// returns the name reported to the shutdown coordinator.
func waitForSignal(ctx context.Context) string {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	select {
	case s := <-ch:
		return signalName(s)
	case <-ctx.Done():
		return "context"
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return s.String()
	}
}
