package httpserver

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// traceRequests opens a server span per request, continuing any trace propagated by the caller.
// The span context is carried in the request's user context.
func traceRequests() fiber.Handler {
	tracer := otel.Tracer("exusiai.dev/folio-stats/internal/server/httpserver")

	return func(ctx *fiber.Ctx) error {
		carrier := propagation.MapCarrier{}
		ctx.Request().Header.VisitAll(func(k, v []byte) {
			carrier[strings.ToLower(string(k))] = string(v)
		})
		parent := otel.GetTextMapPropagator().Extract(ctx.UserContext(), carrier)

		spanCtx, span := tracer.Start(parent, "HTTP "+ctx.Method()+" "+ctx.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethodKey.String(ctx.Method()),
				semconv.HTTPTargetKey.String(string(ctx.Request().RequestURI())),
				attribute.String("http.client_ip", ctx.IP()),
			),
		)
		defer span.End()

		ctx.SetUserContext(spanCtx)
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
		return err
	}
}
