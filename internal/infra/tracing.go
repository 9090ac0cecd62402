package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/pkg/bininfo"
	"exusiai.dev/folio-stats/internal/pkg/observability"
)

// Tracing installs the global OpenTelemetry tracer provider. When tracing is disabled the
// global no-op provider stays in place and spans cost nothing.
func Tracing(conf *appconfig.Config, lc fx.Lifecycle) error {
	if !conf.TracingEnabled {
		log.Info().
			Str("evt.name", "infra.tracing.disabled").
			Msg("tracing is disabled")
		return nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.String("environment", lo.Ternary(conf.DevMode, "dev", "prod")),
		)),
	}

	for _, name := range conf.TracingExporters {
		exporter, err := newExporter(name)
		if err != nil {
			return err
		}
		opts = append(opts, tracesdk.WithBatcher(exporter))
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info().
		Str("evt.name", "infra.tracing.enabled").
		Strs("exporters", conf.TracingExporters).
		Float64("sampleRate", conf.TracingSampleRate).
		Msg("tracing is enabled")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return nil
}

func newExporter(name string) (tracesdk.SpanExporter, error) {
	switch name {
	case "jaeger":
		return jaeger.New(jaeger.WithCollectorEndpoint())
	case "otlp":
		return otlptracegrpc.New(context.Background())
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("infra: tracing: unknown exporter %q", name)
	}
}
