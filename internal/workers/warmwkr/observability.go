package warmwkr

import (
	"time"

	"exusiai.dev/folio-stats/internal/pkg/observability"
)

func observeRefreshDuration(username string, f func() error) error {
	start := time.Now()
	defer func() {
		observability.WorkerRefreshDuration.WithLabelValues(username).Set(time.Since(start).Seconds())
	}()
	return f()
}
