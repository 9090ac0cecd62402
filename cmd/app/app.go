package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/folio-stats/cmd/app/cli/fetch"
	"exusiai.dev/folio-stats/cmd/app/cli/watch"
	"exusiai.dev/folio-stats/cmd/app/server"
	"exusiai.dev/folio-stats/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "folio-stats",
		Description: "LeetCode statistics proxy for the portfolio site. Built with Go, fiber and go.uber.org/fx. Caches in memory, or in Redis when configured.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			fetch.Command(),
			watch.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
