package middlewares

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"exusiai.dev/folio-stats/internal/pkg/flog"
	"exusiai.dev/folio-stats/internal/pkg/observability"
)

func EnrichSentry() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := flog.IDFromFiberCtx(c); ok {
				hub.Scope().SetTag("request_id", id.String())
			}
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		rootSpan := sentry.StartSpan(c.Context(), observability.ServiceName, sentry.ContinueFromRequest(&r))
		defer rootSpan.Finish()

		return c.Next()
	}
}
