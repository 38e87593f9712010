package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/environment"
	"github.com/dmitrymomot/reqkit/pkg/pipeline"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
	"github.com/dmitrymomot/reqkit/pkg/response"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

type homeData struct {
	Version   string             `json:"version"`
	Env       string             `json:"env,omitempty"`
	State     string             `json:"state"`
	RequestID string             `json:"request_id,omitempty"`
	Uptime    string             `json:"uptime"`
	Telemetry telemetry.Snapshot `json:"telemetry"`
}

func homeHandler(d Deps) engine.HandlerFunc {
	return func(c *pipeline.Context) (response.Response, error) {
		data := homeData{
			Version:   d.Version,
			Env:       environment.FromContext(c.Context()).String(),
			State:     d.State.Current().String(),
			RequestID: c.GetString(requestid.MetadataKey),
			Uptime:    time.Since(d.StartedAt).Truncate(time.Second).String(),
			Telemetry: d.Telemetry.GetSnapshot(),
		}

		switch c.Classification().Expects {
		case response.FormatJSON:
			return response.JSON(http.StatusOK, data), nil
		case response.FormatHTML:
			return response.Component(c.Context(), http.StatusOK, homePage(data, homeRows(data))), nil
		default:
			return response.Text(http.StatusOK, homeText(data)), nil
		}
	}
}

func homeText(d homeData) string {
	s := d.Telemetry
	return fmt.Sprintf(
		"reqkit %s\nstate: %s\nuptime: %s\nrequests: %d total, %d active\nlatency: p50=%.2fms p95=%.2fms p99=%.2fms\nheap: %d bytes\ncpu: %.1f%%\nscheduler lag: %s\n",
		d.Version, d.State, d.Uptime,
		s.TotalRequests, s.ActiveRequests,
		s.P50, s.P95, s.P99,
		s.HeapAllocBytes, s.CPUPercent, s.SchedulerLag,
	)
}

type homeRow struct {
	Label string
	Value string
}

func homeRows(d homeData) []homeRow {
	s := d.Telemetry
	return []homeRow{
		{"State", d.State},
		{"Uptime", d.Uptime},
		{"Requests", fmt.Sprintf("%d total, %d active", s.TotalRequests, s.ActiveRequests)},
		{"Latency", fmt.Sprintf("p50 %.2fms / p95 %.2fms / p99 %.2fms", s.P50, s.P95, s.P99)},
		{"Avg response", fmt.Sprintf("%.0f bytes", s.AvgResponseSize)},
		{"Heap", fmt.Sprintf("%d bytes", s.HeapAllocBytes)},
		{"CPU", fmt.Sprintf("%.1f%%", s.CPUPercent)},
		{"Scheduler lag", s.SchedulerLag.String()},
		{"Goroutines", fmt.Sprintf("%d", s.Goroutines)},
	}
}
