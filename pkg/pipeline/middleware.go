package pipeline

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// AccessLog logs one record per request after the rest of the chain returns.
func AccessLog(log *slog.Logger) Middleware {
	if log == nil {
		log = logger.NewNop()
	}
	return MiddlewareFunc(func(c *Context, next Next) (response.Response, error) {
		start := time.Now()
		resp, err := next(c)

		env := c.Envelope()
		attrs := []any{
			slog.String("method", env.Method()),
			slog.String("path", env.Path()),
			logger.Route(c.Route()),
			logger.Status(resp.Status),
			slog.Int("size", resp.Size()),
			logger.Duration(time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, logger.Error(err))
			log.ErrorContext(c.Context(), "request failed", attrs...)
			return resp, err
		}
		log.InfoContext(c.Context(), "request handled", attrs...)
		return resp, nil
	})
}
