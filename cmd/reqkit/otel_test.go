package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/telemetry"
	"github.com/dmitrymomot/reqkit/pkg/telemetry/otelsink"
)

func TestNewMeterProvider(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		mp, err := newMeterProvider(context.Background(), otelConfig{Exporter: "none"}, "reqkit", nil)
		require.NoError(t, err)
		assert.Nil(t, mp)
	})

	t.Run("unknown exporter", func(t *testing.T) {
		t.Parallel()
		_, err := newMeterProvider(context.Background(), otelConfig{Exporter: "zipkin"}, "reqkit", nil)
		assert.ErrorIs(t, err, errUnknownExporter)
	})

	t.Run("stdout exports recorded events", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mp, err := newMeterProvider(context.Background(), otelConfig{Exporter: "stdout"}, "reqkit-test", &buf)
		require.NoError(t, err)
		require.NotNil(t, mp)

		tel := telemetry.New(telemetry.WithSink(otelsink.New(mp.Meter("github.com/dmitrymomot/reqkit"))))
		tel.RequestEnd(tel.RequestStart(), 128)

		// shutdown runs a final collect and export
		require.NoError(t, mp.Shutdown(context.Background()))
		out := buf.String()
		assert.Contains(t, out, "reqkit.requests_total")
		assert.Contains(t, out, "reqkit-test")
	})
}
