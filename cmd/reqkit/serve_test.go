package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/engine"
	"github.com/dmitrymomot/reqkit/pkg/httpserver"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/shutdown"
	"github.com/dmitrymomot/reqkit/pkg/statemachine"
	"github.com/dmitrymomot/reqkit/pkg/telemetry"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServe(t *testing.T) {
	addr := freeAddr(t)
	cfg := serveConfig{
		Logger:    logger.Config{Level: "error", Env: "production", Service: "reqkit-test"},
		Engine:    engine.DefaultConfig(),
		HTTP:      httpserver.Config{Addr: addr, ShutdownTimeout: time.Second, MaxBodySize: 1024},
		Shutdown:  shutdown.Config{Timeout: time.Second},
		Telemetry: telemetry.Config{LagInterval: 50 * time.Millisecond, MetricsEnabled: true},
		OTel:      otelConfig{Exporter: exporterNone},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	base := "http://" + addr
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/readyz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/api/status")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Contains(t, string(body), `"env":"production"`)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestMuxHealthEndpoints(t *testing.T) {
	t.Parallel()

	state := statemachine.New()
	fallback := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux := newMux(logger.NewNop(), state, prometheus.NewRegistry(), fallback)

	status := func(path string) int {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, status("/livez"))
	assert.Equal(t, http.StatusServiceUnavailable, status("/readyz"))
	assert.Equal(t, http.StatusTeapot, status("/anything"))

	require.True(t, state.Transition(statemachine.Ready))
	assert.Equal(t, http.StatusOK, status("/readyz"))

	require.True(t, state.Transition(statemachine.Draining))
	assert.Equal(t, http.StatusOK, status("/livez"))
	assert.Equal(t, http.StatusServiceUnavailable, status("/readyz"))

	require.True(t, state.Transition(statemachine.Stopping))
	assert.Equal(t, http.StatusServiceUnavailable, status("/livez"))
}
