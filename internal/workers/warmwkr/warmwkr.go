// Package warmwkr keeps the default username's stats entry warm, so visitors of the site rarely
// wait on the upstream.
package warmwkr

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/core/leetcode"
)

type Refresher interface {
	Refresh(ctx context.Context, username string) (*leetcode.Entry, error)
}

type WorkerDeps struct {
	fx.In

	StatsService *leetcode.Service
}

type Worker struct {
	// count counts refreshes the worker has completed so far
	count atomic.Int64

	// interval describes the interval in-between refreshes
	interval time.Duration

	username  string
	refresher Refresher
}

func Start(conf *appconfig.Config, lc fx.Lifecycle, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().
			Str("evt.name", "worker.warm.disabled").
			Msg("warm-up worker is disabled")
		return
	}

	w := &Worker{
		interval:  conf.WorkerInterval,
		username:  deps.StatsService.DefaultUsername(),
		refresher: deps.StatsService,
	}

	var stop context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			stop = w.do()
			return nil
		},
		OnStop: func(_ context.Context) error {
			stop()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.refresh(ctx)

			select {
			case <-ctx.Done():
				log.Info().Int64("count", w.Count()).Msg("warm-up worker stopped")
				return
			case <-ticker.C:
			}
		}
	}()

	return cancel
}

func (w *Worker) refresh(ctx context.Context) {
	err := observeRefreshDuration(w.username, func() error {
		_, err := w.refresher.Refresh(ctx, w.username)
		return err
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "worker.warm.failed").
			Str("username", w.username).
			Msg("warm-up refresh failed")
		return
	}

	log.Debug().
		Int64("count", w.count.Add(1)).
		Str("username", w.username).
		Msg("warm-up refresh finished")
}

func (w *Worker) Count() int64 {
	return w.count.Load()
}
