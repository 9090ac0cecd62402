package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"exusiai.dev/folio-stats/internal/core/leetcode"
)

const DefaultInterval = 30 * time.Minute

// State is a snapshot of what a Poller knows.
type State struct {
	// Data is the last successfully fetched record. It survives later failures.
	Data *leetcode.Stats

	// Username is the one the server resolved Data for.
	Username string

	// Err is the error of the last fetch, nil once a fetch succeeds again.
	Err error

	// IsLoading is set while the first fetch is in flight and there is no Data yet.
	IsLoading bool

	// IsValidating is set while any fetch is in flight.
	IsValidating bool

	UpdatedAt time.Time
}

type StatsGetter interface {
	GetStats(ctx context.Context, username string) (*leetcode.StatsResponse, error)
}

// Poller fetches the stats of one username when Run starts and then on every interval tick,
// publishing each change of State to its subscribers.
type Poller struct {
	getter   StatsGetter
	username string
	interval time.Duration
	now      func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	state  State
	subs   []chan State
	closed bool
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func NewPoller(getter StatsGetter, username string, opts ...PollerOption) *Poller {
	p := &Poller{
		getter:   getter,
		username: username,
		interval: DefaultInterval,
		now:      time.Now,
		state:    State{IsLoading: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is done, then closes every subscription.
func (p *Poller) Run(ctx context.Context) error {
	defer p.close()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Refresh(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Refresh fetches now. Concurrent calls share one request.
func (p *Poller) Refresh(ctx context.Context) State {
	_, _, _ = p.group.Do(p.username, func() (any, error) {
		p.update(func(s *State) {
			s.IsValidating = true
			s.IsLoading = s.Data == nil
		})

		resp, err := p.getter.GetStats(ctx, p.username)

		p.update(func(s *State) {
			s.IsValidating = false
			s.IsLoading = false
			if err != nil {
				log.Warn().
					Err(err).
					Str("evt.name", "client.poller.failed").
					Str("username", p.username).
					Msg("failed to refresh stats")
				s.Err = err
				return
			}
			s.Data = &resp.Data
			s.Username = resp.Username
			s.Err = nil
			s.UpdatedAt = p.now()
		})
		return nil, nil
	})
	return p.State()
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe returns a channel that receives the current State right away and every later
// change. A slow reader only misses intermediate states, never the latest one. The channel is
// closed when Run returns.
func (p *Poller) Subscribe() <-chan State {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan State, 1)
	if p.closed {
		close(ch)
		return ch
	}
	ch <- p.state
	p.subs = append(p.subs, ch)
	return ch
}

func (p *Poller) update(f func(s *State)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f(&p.state)
	for _, ch := range p.subs {
		publish(ch, p.state)
	}
}

// publish replaces whatever the reader has not consumed yet with s.
func publish(ch chan State, s State) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (p *Poller) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
}
