package warmwkr

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"exusiai.dev/folio-stats/internal/core/leetcode"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
	users chan string
}

func (r *countingRefresher) Refresh(_ context.Context, username string) (*leetcode.Entry, error) {
	r.calls.Add(1)
	select {
	case r.users <- username:
	default:
	}
	return &leetcode.Entry{}, r.err
}

func TestWorkerRefreshesOnInterval(t *testing.T) {
	r := &countingRefresher{users: make(chan string, 1)}
	w := &Worker{interval: 10 * time.Millisecond, username: "anujkarambalkar1504", refresher: r}

	stop := w.do()
	defer stop()

	assert.Equal(t, "anujkarambalkar1504", <-r.users)
	assert.Eventually(t, func() bool { return w.Count() >= 3 }, time.Second, time.Millisecond)
}

func TestWorkerSurvivesFailures(t *testing.T) {
	r := &countingRefresher{err: errors.New("upstream down")}
	w := &Worker{interval: 10 * time.Millisecond, username: "anujkarambalkar1504", refresher: r}

	stop := w.do()
	assert.Eventually(t, func() bool { return r.calls.Load() >= 3 }, time.Second, time.Millisecond)
	stop()

	assert.EqualValues(t, 0, w.Count())
}

func TestWorkerStops(t *testing.T) {
	r := &countingRefresher{}
	w := &Worker{interval: 5 * time.Millisecond, username: "anujkarambalkar1504", refresher: r}

	stop := w.do()
	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, time.Second, time.Millisecond)
	stop()

	time.Sleep(20 * time.Millisecond)
	settled := r.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, r.calls.Load())
}
