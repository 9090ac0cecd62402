package watch

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"exusiai.dev/folio-stats/internal/client"
	"exusiai.dev/folio-stats/internal/client/widget"
	"exusiai.dev/folio-stats/internal/core/leetcode"
)

const (
	clearScreen = "\033[H\033[2J"
	frames      = 24
	animation   = 900 * time.Millisecond
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "poll a running server and keep a live dashboard on the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   "http://localhost:9010",
				Usage:   "base URL of the folio-stats server",
				EnvVars: []string{"FOLIOSTATS_WATCH_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:  "username",
				Usage: "LeetCode username, defaults to the server's default username",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: client.DefaultInterval,
				Usage: "polling interval",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			username := c.String("username")
			p := client.NewPoller(
				client.New(c.String("endpoint")),
				username,
				client.WithInterval(c.Duration("interval")),
			)
			states := p.Subscribe()

			errc := make(chan error, 1)
			go func() { errc <- p.Run(ctx) }()

			var shown *leetcode.Stats
			for s := range states {
				if err := draw(os.Stdout, username, s, shown); err != nil {
					return err
				}
				if s.Data != nil {
					shown = s.Data
				}
			}

			if err := <-errc; err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

// draw animates from the figures on screen to those in s when s carries a new record.
func draw(w io.Writer, username string, s client.State, shown *leetcode.Stats) error {
	view := widget.View{Username: username, State: s, From: shown, Progress: 1}
	if s.Data == nil || s.Data == shown {
		return frame(w, view)
	}

	for i := 0; i <= frames; i++ {
		view.Progress = float64(i) / frames
		if err := frame(w, view); err != nil {
			return err
		}
		time.Sleep(animation / frames)
	}
	return nil
}

func frame(w io.Writer, v widget.View) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return err
	}
	return widget.Render(w, v)
}
