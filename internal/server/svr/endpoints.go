package svr

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/pkg/middlewares"
)

type API struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

type Admin struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*API, *Meta, *Admin) {
	api := app.Group("/api")
	meta := api.Group("/_")
	admin := meta.Group("/admin", middlewares.AdminAuth(conf.AdminKey))

	return &API{Router: api}, &Meta{Router: meta}, &Admin{Router: admin}
}
