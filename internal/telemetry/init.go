// Package telemetry owns tracing setup. Every sampling decision is a pure
// function of the Config injected at startup.
package telemetry

import (
	"context"
	"log"

	"vpp-configurator/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type Config struct {
	Enabled     bool
	SampleRate  float64
	Endpoint    string
	ServiceName string
}

func FromAppConfig(c config.TelemetryConfig) Config {
	return Config{
		Enabled:     c.Enabled,
		SampleRate:  config.ClampRate(c.SampleRate),
		Endpoint:    c.Endpoint,
		ServiceName: c.ServiceName,
	}
}

// ShouldSample decides for a uniform draw in [0, 1)
func ShouldSample(cfg Config, draw float64) bool {
	if !cfg.Enabled {
		return false
	}
	return draw < config.ClampRate(cfg.SampleRate)
}

func Sampler(cfg Config) sdktrace.Sampler {
	if !cfg.Enabled {
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.ClampRate(cfg.SampleRate)))
}

// InitTracer installs the global tracer provider with an OTLP HTTP exporter.
// The returned shutdown func is always safe to call.
func InitTracer(ctx context.Context, cfg Config) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		log.Println("OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)")
		return noop
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Warning: Failed to create OTLP exporter: %v (tracing disabled)", err)
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(Sampler(cfg)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)

	otel.SetTracerProvider(tp)
	log.Printf("OpenTelemetry tracer initialized (endpoint: %s, sample rate: %.2f)", cfg.Endpoint, cfg.SampleRate)

	return tp.Shutdown
}
