package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Metric exporters accepted by OTEL_METRICS_EXPORTER.
const (
	exporterNone   = "none"
	exporterStdout = "stdout"
	exporterOTLP   = "otlp"
)

var errUnknownExporter = errors.New("unknown otel metrics exporter")

type otelConfig struct {
	Exporter string        `env:"OTEL_METRICS_EXPORTER" envDefault:"none"`
	Endpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	Insecure bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	Interval time.Duration `env:"OTEL_METRIC_EXPORT_INTERVAL" envDefault:"30s"`
}

// newMeterProvider builds an SDK meter provider with a periodic reader over
// the configured exporter. It returns nil when exporting is disabled. The
// stdout exporter writes to w.
func newMeterProvider(ctx context.Context, cfg otelConfig, service string, w io.Writer) (*sdkmetric.MeterProvider, error) {
	var (
		exp sdkmetric.Exporter
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Exporter)) {
	case "", exporterNone:
		return nil, nil
	case exporterStdout:
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(w))
	case exporterOTLP:
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err = otlpmetrichttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownExporter, cfg.Exporter)
	}
	if err != nil {
		return nil, err
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, readerOpts...)),
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	), nil
}
