// Package trace sets up OpenTelemetry tracing for layout solves.
package trace

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer handed to the layout solver.
const InstrumentationName = "layoutkit/layout"

// Options configures a Provider.
type Options struct {
	// Endpoint is the OTLP/HTTP collector (host:port). Empty disables export.
	Endpoint string
	// ServiceName defaults to "layoutkit".
	ServiceName string
	// Insecure sends plain HTTP. For local collectors.
	Insecure bool
	// SpanProcessors receive spans in addition to the exporter.
	SpanProcessors []sdktrace.SpanProcessor
}

// OptionsFromEnv reads OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_SERVICE_NAME.
func OptionsFromEnv() Options {
	return Options{
		Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName: os.Getenv("OTEL_SERVICE_NAME"),
		Insecure:    true,
	}
}

// Provider owns the tracer used for layout spans. With no endpoint and no
// span processors it hands out a no-op tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewProvider creates a tracer provider for opts.
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	if opts.Endpoint == "" && len(opts.SpanProcessors) == 0 {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}, nil
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "layoutkit"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if opts.Endpoint != "" {
		httpOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.Endpoint)}
		if opts.Insecure {
			httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	for _, sp := range opts.SpanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}

	provider := sdktrace.NewTracerProvider(tpOpts...)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
	}, nil
}

// Tracer returns the layout tracer.
func (p *Provider) Tracer() oteltrace.Tracer { return p.tracer }

// Enabled reports whether spans go anywhere.
func (p *Provider) Enabled() bool { return p != nil && p.provider != nil }

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
