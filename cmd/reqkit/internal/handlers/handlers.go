// Package handlers holds the demonstration handlers served by the reqkit
// binary: a diagnostic home page, an SVG badge generator and a health report.
package handlers

import (
	"time"

	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

const (
	Home   engine.HandlerName = "home"
	Badge  engine.HandlerName = "badge"
	Health engine.HandlerName = "health"
)

// Deps are the runtime components the handlers report on.
type Deps struct {
	State     *statemachine.Manager
	Telemetry *telemetry.Telemetry
	Version   string
	StartedAt time.Time
}

// Routes returns the route table. Every handler name used here has an entry
// in Table.
func Routes() []engine.Route {
	return []engine.Route{
		{Method: "GET", Pattern: "/", Handler: Home},
		{Method: "GET", Pattern: "/api/status", Handler: Home},
		{Method: "GET", Pattern: "/health", Handler: Health},
		{Method: "GET", Pattern: "/badge/:label/:value.svg", Handler: Badge},
	}
}

// Table returns the handler table for d.
func Table(d Deps) engine.Handlers {
	if d.StartedAt.IsZero() {
		d.StartedAt = time.Now()
	}
	return engine.Handlers{
		Home:   homeHandler(d),
		Badge:  engine.HandlerFunc(badge),
		Health: healthHandler(d),
	}
}
