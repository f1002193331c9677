// Package tracing sets up the OpenTelemetry tracer shared by handlers,
// fetchers and the refresh job.
package tracing

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "macro-dashboard"
	serviceVersion = "1.0.0"

	defaultEndpoint = "localhost:4317"
)

// Options controls export. A refresh fans out to a dozen upstream calls, so
// busy deployments usually sample.
type Options struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

// OptionsFromEnv reads TRACING_ENABLED, OTEL_EXPORTER_OTLP_ENDPOINT and
// TRACING_SAMPLE_RATIO. Unparseable or out of range ratios fall back to 1.
func OptionsFromEnv() Options {
	opts := Options{
		Enabled:     !strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "false"),
		Endpoint:    strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		SampleRatio: 1,
	}
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}
	if raw := strings.TrimSpace(os.Getenv("TRACING_SAMPLE_RATIO")); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && r >= 0 && r <= 1 {
			opts.SampleRatio = r
		}
	}
	return opts
}

var newTraceExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

// InitTracer installs the global tracer provider configured from the
// environment. With tracing disabled spans stay in-process.
func InitTracer(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
	return NewProvider(ctx, OptionsFromEnv())
}

// NewProvider builds and installs a tracer provider for opts.
func NewProvider(ctx context.Context, opts Options) (*sdktrace.TracerProvider, trace.Tracer, error) {
	if !opts.Enabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, tp.Tracer(serviceName), nil
	}

	exporter, err := newTraceExporter(ctx, opts.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Tracer(serviceName), nil
}
