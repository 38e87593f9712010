package pipeline

import (
	"context"
	"maps"

	"github.com/dmitrymomot/reqkit/pkg/classify"
	"github.com/dmitrymomot/reqkit/pkg/envelope"
)

// RequestContext is the immutable per-request view handed to middleware and
// handlers.
type RequestContext struct {
	ctx    context.Context
	env    envelope.Envelope
	class  classify.Classification
	route  string
	params map[string]string
}

// NewRequestContext builds a RequestContext. The params map is copied.
func NewRequestContext(ctx context.Context, env envelope.Envelope, class classify.Classification, route string, params map[string]string) RequestContext {
	if ctx == nil {
		ctx = context.Background()
	}
	frozen := make(map[string]string, len(params))
	maps.Copy(frozen, params)
	return RequestContext{
		ctx:    ctx,
		env:    env,
		class:  class,
		route:  route,
		params: frozen,
	}
}

// Context returns the cancellation signal for the request. It is cancelled
// when the request deadline passes.
func (r RequestContext) Context() context.Context { return r.ctx }

func (r RequestContext) Envelope() envelope.Envelope             { return r.env }
func (r RequestContext) Classification() classify.Classification { return r.class }

// Route returns the pattern of the matched route.
func (r RequestContext) Route() string { return r.route }

// Param returns the named route parameter.
func (r RequestContext) Param(name string) string { return r.params[name] }

// Params returns a copy of all route parameters.
func (r RequestContext) Params() map[string]string { return maps.Clone(r.params) }

// Cancelled reports whether the request has been cancelled.
func (r RequestContext) Cancelled() bool { return r.ctx.Err() != nil }

// Context is the extended view used inside the pipeline.
type Context struct {
	RequestContext
	metadata map[string]any
}

// NewContext wraps rc with an empty metadata map.
func NewContext(rc RequestContext) *Context {
	return &Context{RequestContext: rc, metadata: make(map[string]any)}
}

// Set stores a metadata value.
func (c *Context) Set(key string, value any) {
	c.metadata[key] = value
}

// Get returns a metadata value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.metadata[key]
	return v, ok
}

// GetString returns a metadata value as a string, or "" if absent or of
// another type.
func (c *Context) GetString(key string) string {
	s, _ := c.metadata[key].(string)
	return s
}

// Metadata returns a copy of the metadata map.
func (c *Context) Metadata() map[string]any {
	return maps.Clone(c.metadata)
}
