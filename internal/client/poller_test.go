package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/folio-stats/internal/core/leetcode"
)

type fakeGetter struct {
	calls   atomic.Int32
	mu      sync.Mutex
	solved  int64
	err     error
	release chan struct{}
}

func (f *fakeGetter) GetStats(ctx context.Context, username string) (*leetcode.StatsResponse, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &leetcode.StatsResponse{
		Username: username,
		Data:     leetcode.Stats{TotalSolved: lo.ToPtr(f.solved)},
	}, nil
}

func (f *fakeGetter) set(solved int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.solved = solved
	f.err = err
}

func TestPollerInitialState(t *testing.T) {
	p := NewPoller(&fakeGetter{}, "john_doe")
	s := p.State()
	assert.True(t, s.IsLoading)
	assert.Nil(t, s.Data)
	assert.Equal(t, DefaultInterval, p.interval)
}

func TestPollerRefreshKeepsDataOnError(t *testing.T) {
	g := &fakeGetter{solved: 180}
	p := NewPoller(g, "john_doe")

	s := p.Refresh(context.Background())
	require.NoError(t, s.Err)
	require.NotNil(t, s.Data)
	assert.EqualValues(t, 180, *s.Data.TotalSolved)
	assert.False(t, s.IsLoading)

	g.set(0, errors.New("upstream down"))
	s = p.Refresh(context.Background())
	assert.Error(t, s.Err)
	require.NotNil(t, s.Data, "the last good record is kept")
	assert.EqualValues(t, 180, *s.Data.TotalSolved)

	g.set(181, nil)
	s = p.Refresh(context.Background())
	assert.NoError(t, s.Err)
	assert.EqualValues(t, 181, *s.Data.TotalSolved)
}

func TestPollerDedupesConcurrentRefreshes(t *testing.T) {
	g := &fakeGetter{solved: 1, release: make(chan struct{})}
	p := NewPoller(g, "john_doe")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Refresh(context.Background())
		}()
	}

	assert.Eventually(t, func() bool { return g.calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.True(t, p.State().IsValidating)
	time.Sleep(10 * time.Millisecond)
	close(g.release)
	wg.Wait()

	assert.EqualValues(t, 1, g.calls.Load())
	assert.False(t, p.State().IsValidating)
}

func TestPollerRunPublishesAndCloses(t *testing.T) {
	g := &fakeGetter{solved: 1}
	p := NewPoller(g, "john_doe", WithInterval(10*time.Millisecond))
	sub := p.Subscribe()

	first := <-sub
	assert.True(t, first.IsLoading, "subscribers get the current state right away")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	var got State
	assert.Eventually(t, func() bool {
		select {
		case got = <-sub:
		default:
		}
		return got.Data != nil && !got.IsValidating
	}, time.Second, time.Millisecond)
	assert.EqualValues(t, 1, *got.Data.TotalSolved)

	g.set(2, nil)
	assert.Eventually(t, func() bool {
		select {
		case got = <-sub:
		default:
		}
		return got.Data != nil && *got.Data.TotalSolved == 2
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	for range sub {
	}
	_, ok := <-p.Subscribe()
	assert.False(t, ok, "subscriptions after Run returned are closed")
}
