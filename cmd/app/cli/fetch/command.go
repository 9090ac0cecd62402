package fetch

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/folio-stats/cmd/app/cli"
	"exusiai.dev/folio-stats/internal/client"
	"exusiai.dev/folio-stats/internal/client/widget"
	"exusiai.dev/folio-stats/internal/core/leetcode"
)

type CommandDeps struct {
	fx.In

	StatsService *leetcode.Service
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "fetch the stats of a username once, without starting the server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "username",
				Usage: "LeetCode username, defaults to the configured default username",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the response body instead of the dashboard",
			},
		},
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Populate[CommandDeps]()
			if err != nil {
				return err
			}
			defer stop()

			entry, err := deps.StatsService.GetStats(c.Context, c.String("username"))
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entry.Response)
			}

			return widget.Render(os.Stdout, widget.View{
				Username: entry.Response.Username,
				State: client.State{
					Data:      &entry.Response.Data,
					UpdatedAt: entry.FetchedAt,
				},
				Progress: 1,
			})
		},
	}
}
