package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/cmd/reqkit/internal/handlers"
	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/envelope"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
	"github.com/dmitrymomot/reqkit/pkg/response"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

func newRuntime(t *testing.T) *engine.Runtime {
	t.Helper()
	return newVersionedRuntime(t, "test")
}

func newVersionedRuntime(t *testing.T, version string) *engine.Runtime {
	t.Helper()
	state := statemachine.New()
	tel := telemetry.New()
	rt, err := engine.New(engine.DefaultConfig(), handlers.Routes(),
		handlers.Table(handlers.Deps{State: state, Telemetry: tel, Version: version}),
		engine.WithStateManager(state),
		engine.WithTelemetry(tel),
		engine.WithMiddleware(requestid.Middleware()),
	)
	require.NoError(t, err)
	require.NoError(t, rt.Start(context.Background()))
	t.Cleanup(rt.Stop)
	return rt
}

func get(target string, headers map[string]string) envelope.Envelope {
	return envelope.New(envelope.Params{ID: "req-42", Method: "GET", Target: target, Headers: headers})
}

func TestRoutesHaveHandlers(t *testing.T) {
	t.Parallel()

	table := handlers.Table(handlers.Deps{State: statemachine.New(), Telemetry: telemetry.New()})
	for _, r := range handlers.Routes() {
		assert.Contains(t, table, r.Handler, "route %s %s", r.Method, r.Pattern)
	}
}

func TestHome(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)

	t.Run("text", func(t *testing.T) {
		resp := rt.Handle(context.Background(), get("/", nil))
		require.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, response.ContentTypeText, resp.Header("Content-Type"))
		assert.Contains(t, string(resp.Body), "reqkit test")
		assert.Contains(t, string(resp.Body), "state: READY")
	})

	t.Run("html", func(t *testing.T) {
		resp := rt.Handle(context.Background(), get("/", map[string]string{"Accept": "text/html"}))
		require.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, response.ContentTypeHTML, resp.Header("Content-Type"))
		assert.Contains(t, string(resp.Body), "<!doctype html>")
		assert.Contains(t, string(resp.Body), "<h1>reqkit test</h1>")
		assert.Contains(t, string(resp.Body), "<th>State</th><td>READY</td>")
		assert.Contains(t, string(resp.Body), "<th>Goroutines</th>")
		assert.Contains(t, string(resp.Body), "<p><small>request req-42</small></p>")
	})

	t.Run("json", func(t *testing.T) {
		resp := rt.Handle(context.Background(), get("/api/status", nil))
		require.Equal(t, http.StatusOK, resp.Status)

		var body struct {
			Data struct {
				Version   string `json:"version"`
				State     string `json:"state"`
				RequestID string `json:"request_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(resp.Body, &body))
		assert.Equal(t, "test", body.Data.Version)
		assert.Equal(t, "READY", body.Data.State)
		assert.Equal(t, "req-42", body.Data.RequestID)
	})
}

func TestBadge(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)

	resp := rt.Handle(context.Background(), get("/badge/build/passing.svg?color=blue", nil))
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, response.ContentTypeSVG, resp.Header("Content-Type"))
	body := string(resp.Body)
	assert.Contains(t, body, ">build</text>")
	assert.Contains(t, body, ">passing</text>")
	assert.Contains(t, body, `fill="#007ec6"`)

	resp = rt.Handle(context.Background(), get("/badge/a%3Cb/x%20y.svg", nil))
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), ">a&lt;b</text>")
	assert.Contains(t, string(resp.Body), ">x y</text>")

	resp = rt.Handle(context.Background(), get("/badge/build/passing", nil))
	assert.Equal(t, http.StatusNotFound, resp.Status, "the .svg suffix is part of the route")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)

	resp := rt.Handle(context.Background(), get("/health", nil))
	require.Equal(t, http.StatusOK, resp.Status)

	var body struct {
		Data struct {
			State   string `json:"state"`
			Ready   bool   `json:"ready"`
			Alive   bool   `json:"alive"`
			History []struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"history"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Equal(t, "READY", body.Data.State)
	assert.True(t, body.Data.Ready)
	assert.True(t, body.Data.Alive)
	require.Len(t, body.Data.History, 1)
	assert.Equal(t, "STARTING", body.Data.History[0].From)

	require.True(t, rt.State().Transition(statemachine.Degraded))
	resp = rt.Handle(context.Background(), get("/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	assert.Contains(t, string(resp.Body), `"DEGRADED"`)
}

func TestHomePageEscapesValues(t *testing.T) {
	t.Parallel()
	rt := newVersionedRuntime(t, "<script>x</script>")
	resp := rt.Handle(context.Background(), get("/", map[string]string{"Accept": "text/html"}))
	require.Equal(t, http.StatusOK, resp.Status)
	assert.NotContains(t, string(resp.Body), "<script>")
	assert.Contains(t, string(resp.Body), "&lt;script&gt;x&lt;/script&gt;")
}
