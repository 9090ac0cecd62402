package controller

import (
	"go.uber.org/fx"

	controllerapi "exusiai.dev/folio-stats/internal/controller/api"
	controllermeta "exusiai.dev/folio-stats/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		controllerapi.Module(),
		controllermeta.Module(),
	)
}
