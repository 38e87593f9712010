package handlers

import (
	"net/http"

	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/response"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

type transition struct {
	From string `json:"from"`
	To   string `json:"to"`
	At   string `json:"at"`
}

type healthReport struct {
	State     string             `json:"state"`
	Ready     bool               `json:"ready"`
	Alive     bool               `json:"alive"`
	History   []transition       `json:"history"`
	Telemetry telemetry.Snapshot `json:"telemetry"`
}

// healthHandler reports lifecycle state and telemetry. It answers 503 unless
// the runtime is READY so load balancers stop routing to degraded instances.
func healthHandler(d Deps) engine.HandlerFunc {
	return func(c *pipeline.Context) (response.Response, error) {
		history := d.State.History()
		report := healthReport{
			State:     d.State.Current().String(),
			Ready:     d.State.IsReady(),
			Alive:     d.State.IsAlive(),
			History:   make([]transition, 0, len(history)),
			Telemetry: d.Telemetry.GetSnapshot(),
		}
		for _, h := range history {
			report.History = append(report.History, transition{
				From: h.From.String(),
				To:   h.To.String(),
				At:   h.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			})
		}

		status := http.StatusOK
		if !report.Ready {
			status = http.StatusServiceUnavailable
		}
		return response.JSON(status, report).WithHeader("Cache-Control", "no-store"), nil
	}
}
