// Package pipeline threads a request through an ordered chain of middleware
// before it reaches a terminal handler.
//
// Every request gets a RequestContext: an immutable view of the envelope, its
// classification, the route parameters and the cancellation signal. Middleware
// and handlers receive a *Context that embeds the RequestContext and adds a
// free-form metadata map, seeded empty per request, so stages can hand values
// to each other without touching the canonical fields.
//
// # Usage
//
//	p := pipeline.New()
//	p.Use(requestid.Middleware())
//	p.Use(pipeline.MiddlewareFunc(func(c *pipeline.Context, next pipeline.Next) (response.Response, error) {
//		if c.Envelope().Header("X-Block") != "" {
//			return response.Text(http.StatusForbidden, "blocked"), nil
//		}
//		return next(c)
//	}))
//
//	resp, err := p.Handle(c, terminal)
//
// A middleware short-circuits by returning without calling next. Calling next
// more than once is undefined behavior.
//
// # Concurrency
//
// Use must be called before the first Handle. The metadata map is owned by a
// single request and is not safe for concurrent use.
package pipeline
