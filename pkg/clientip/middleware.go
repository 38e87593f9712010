package clientip

import (
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// MetadataKey is the pipeline metadata key holding the client IP.
const MetadataKey = "client_ip"

// Middleware resolves the client IP from the envelope and stores it in
// pipeline metadata.
func Middleware() pipeline.Middleware {
	return pipeline.MiddlewareFunc(func(c *pipeline.Context, next pipeline.Next) (response.Response, error) {
		c.Set(MetadataKey, FromEnvelope(c.Envelope()))
		return next(c)
	})
}
