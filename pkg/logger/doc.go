// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New builds a *slog.Logger from Option values. The concrete handler is
// slog.NewTextHandler or slog.NewJSONHandler, wrapped by NewContextHandler,
// which runs the registered ContextExtractor callbacks before delegating.
//
// Helper constructors such as Error, RequestID, State and Route keep
// attribute keys consistent across the runtime components.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Development, "reqkit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "request handled",
//	    logger.Route("/users/:id"),
//	    logger.Status(200),
//	)
//
// NewFromConfig reads the same settings from a Config populated by
// pkg/config. NewNop returns a logger that discards everything and is the
// default for every component that accepts a WithLogger option.
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("operation finished", logger.Error(err))
//
// is safe when err is nil.
package logger
