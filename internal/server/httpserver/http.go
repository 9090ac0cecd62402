package httpserver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/felixge/fgprof"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/pkg/apierr"
	"exusiai.dev/folio-stats/internal/pkg/bininfo"
	"exusiai.dev/folio-stats/internal/pkg/middlewares"
	"exusiai.dev/folio-stats/internal/pkg/observability"
)

var (
	fiberprom     *fiberprometheus.FiberPrometheus
	fiberpromOnce sync.Once
)

// prom registers its collectors with the default registry, which only accepts them once.
func prom() *fiberprometheus.FiberPrometheus {
	fiberpromOnce.Do(func() {
		fiberprom = fiberprometheus.New(observability.ServiceName)
	})
	return fiberprom
}

func Create(conf *appconfig.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "folio-stats",
		ServerHeader: fmt.Sprintf("folio-stats/%s", bininfo.Version),
		ReadTimeout:  time.Second * 20,
		// the handler may wait on the upstream, which has no timeout of its own by default
		WriteTimeout:   time.Second * 60,
		ReadBufferSize: 8192,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:             conf.HTTPServerShutdownTimeout,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          conf.TrustedProxies,
		ErrorHandler:            ErrorHandler,
		Immutable:               true,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
	})

	app.Use(favicon.New())
	app.Use(fibersentry.New(fibersentry.Config{
		Repanic: true,
		Timeout: time.Second * 5,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  conf.CORSAllowOrigins,
		AllowMethods:  "GET, POST, OPTIONS",
		AllowHeaders:  "Content-Type, Authorization, If-None-Match, sentry-trace, traceparent",
		ExposeHeaders: "Content-Type, ETag, Last-Modified, " + middlewares.RequestIDHeader,
	}))
	middlewares.Logger(app)

	app.Use(helmet.New(helmet.Config{
		HSTSMaxAge:         31356000,
		HSTSPreloadEnabled: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		PermissionPolicy:   "interest-cohort=()",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Msgf("panic: %v\n%s\n", e, buf)
		},
	}))

	p := prom()
	p.RegisterAt(app, "/metrics")
	app.Use(p.Middleware)

	if conf.TracingEnabled {
		app.Use(traceRequests())
	}

	if conf.DevMode {
		log.Info().Msg("Running in DEV mode")
		app.Use(pprof.New())
		app.Get("/debug/fgprof", adaptor.HTTPHandler(fgprof.Handler()))
	} else {
		app.Use(middlewares.EnrichSentry())

		// only lookups of usernames other than the default one are limited
		app.Use(limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				username := c.Query("username")
				return username == "" || username == conf.DefaultUsername
			},
			LimitReached: func(c *fiber.Ctx) error {
				return apierr.ErrTooManyRequests
			},
			Max:        60,
			Expiration: time.Minute,
		}))
	}

	return app
}
