package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/pouriyajamshidi/tcprobe"
	"github.com/pouriyajamshidi/tcprobe/telemetry"
)

const instrumentationName = "github.com/pouriyajamshidi/tcprobe"

// otlpCollector is where --otlp-endpoint points: a collector base URL to
// which the per-signal paths are appended.
type otlpCollector struct {
	host     string
	basePath string
	insecure bool
}

func parseOTLPEndpoint(endpoint string) (otlpCollector, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return otlpCollector{}, fmt.Errorf("invalid OTLP endpoint %q: want http(s)://host:port", endpoint)
	}

	return otlpCollector{
		host:     u.Host,
		basePath: strings.TrimSuffix(u.Path, "/"),
		insecure: u.Scheme == "http",
	}, nil
}

// setupTelemetry builds the event handler of a run: structured logging and
// metrics always, with metrics and traces exported when otlpEndpoint is set.
// The returned function flushes pending data.
func setupTelemetry(ctx context.Context, otlpEndpoint string, logger *slog.Logger) (tcprobe.EventHandler, func(context.Context) error, error) {
	handlers := []tcprobe.EventHandler{telemetry.NewLogHandler(logger).Handle}
	shutdown := func(context.Context) error { return nil }

	if otlpEndpoint == "" {
		metrics, err := telemetry.NewMetricsHandler(otelapi.GetMeterProvider().Meter(instrumentationName))
		if err != nil {
			return nil, nil, fmt.Errorf("initializing metrics: %w", err)
		}
		return tcprobe.MultiEventHandler(append(handlers, metrics.Handle)...), shutdown, nil
	}

	collector, err := parseOTLPEndpoint(otlpEndpoint)
	if err != nil {
		return nil, nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", "tcprobe"),
		attribute.String("service.version", Version),
	)

	mp, err := newMeterProvider(ctx, collector, res)
	if err != nil {
		return nil, nil, err
	}

	tp, err := newTracerProvider(ctx, collector, res)
	if err != nil {
		return nil, nil, errors.Join(err, mp.Shutdown(ctx))
	}

	otelapi.SetMeterProvider(mp)
	otelapi.SetTracerProvider(tp)

	metrics, err := telemetry.NewMetricsHandler(mp.Meter(instrumentationName))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing metrics: %w", err)
	}

	handlers = append(handlers,
		metrics.Handle,
		telemetry.NewTracingHandler(tp.Tracer(instrumentationName)).Handle,
	)

	shutdown = func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	return tcprobe.MultiEventHandler(handlers...), shutdown, nil
}

func newMeterProvider(ctx context.Context, c otlpCollector, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(c.host),
		otlpmetrichttp.WithURLPath(c.basePath + "/v1/metrics"),
	}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP metric exporter for %s: %w", c.host, err)
	}

	// a run is short, the final collection happens on Shutdown
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	), nil
}

func newTracerProvider(ctx context.Context, c otlpCollector, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.host),
		otlptracehttp.WithURLPath(c.basePath + "/v1/traces"),
	}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter for %s: %w", c.host, err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
