package cli

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/app"
	"exusiai.dev/folio-stats/internal/app/appcontext"
)

// Populate starts the application graph for a one-off command and fills deps from it.
// stop must be called once the command is done.
func Populate[T any]() (deps T, stop func(), err error) {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), fx.Populate(&deps))

	startCtx, cancel := context.WithTimeout(context.Background(), a.StartTimeout())
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		return deps, nil, err
	}

	return deps, func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), a.StopTimeout())
		defer cancel()
		_ = a.Stop(stopCtx)
	}, nil
}
