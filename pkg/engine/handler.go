package engine

import (
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
)

// HandlerName identifies an entry in the handler table.
type HandlerName string

// Handler produces the response for a routed request.
type Handler interface {
	Serve(c *pipeline.Context) (response.Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(c *pipeline.Context) (response.Response, error)

// Serve implements Handler.
func (f HandlerFunc) Serve(c *pipeline.Context) (response.Response, error) {
	return f(c)
}

// Handlers is the closed table of named handlers.
type Handlers map[HandlerName]Handler

// Route binds a method and pattern to a handler name.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerName
}
