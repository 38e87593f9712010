package pipeline

import (
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// Next continues the chain.
type Next func(c *Context) (response.Response, error)

// Middleware intercepts a request on its way to the terminal handler.
type Middleware interface {
	Handle(c *Context, next Next) (response.Response, error)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(c *Context, next Next) (response.Response, error)

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *Context, next Next) (response.Response, error) {
	return f(c, next)
}

// Pipeline is an ordered list of middleware.
type Pipeline struct {
	middleware []Middleware
}

// New creates a pipeline with the given middleware.
func New(mw ...Middleware) *Pipeline {
	p := &Pipeline{}
	p.Use(mw...)
	return p
}

// Use appends middleware. Nil values are skipped.
func (p *Pipeline) Use(mw ...Middleware) {
	for _, m := range mw {
		if m != nil {
			p.middleware = append(p.middleware, m)
		}
	}
}

// Len returns the number of registered middleware.
func (p *Pipeline) Len() int {
	return len(p.middleware)
}

// Handle runs c through every middleware in order and finally through
// terminal.
func (p *Pipeline) Handle(c *Context, terminal Next) (response.Response, error) {
	return p.next(0, terminal)(c)
}

func (p *Pipeline) next(i int, terminal Next) Next {
	return func(c *Context) (response.Response, error) {
		if i >= len(p.middleware) {
			return terminal(c)
		}
		return p.middleware[i].Handle(c, p.next(i+1, terminal))
	}
}
