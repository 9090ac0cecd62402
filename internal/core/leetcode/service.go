package leetcode

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/pkg/cache"
	"exusiai.dev/folio-stats/internal/pkg/observability"
)

// Fetcher runs the upstream stats query for one username.
type Fetcher interface {
	FetchStats(ctx context.Context, username string) (*RawResponse, error)
}

type Service struct {
	fetcher         Fetcher
	store           cache.Store[Entry]
	ttl             time.Duration
	defaultUsername string
	now             func() time.Time

	group singleflight.Group
}

func NewService(repo *Repo, store cache.Store[Entry], conf *appconfig.Config) *Service {
	return newService(repo, store, conf.StatsCacheTTL, conf.DefaultUsername, time.Now)
}

func newService(fetcher Fetcher, store cache.Store[Entry], ttl time.Duration, defaultUsername string, now func() time.Time) *Service {
	return &Service{
		fetcher:         fetcher,
		store:           store,
		ttl:             ttl,
		defaultUsername: defaultUsername,
		now:             now,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) DefaultUsername() string {
	return s.defaultUsername
}

// GetStats returns the cached entry for username while it is younger than the TTL, and
// fetches a new one otherwise. Concurrent misses for the same username share one upstream
// call. An empty username means the default username.
//
// Once issued, the upstream call is not cancelled together with ctx; its result still
// replaces the cache entry.
func (s *Service) GetStats(ctx context.Context, username string) (*Entry, error) {
	if username == "" {
		username = s.defaultUsername
	}

	if entry, ok := s.lookup(ctx, username); ok {
		observability.StatsCacheLookups.WithLabelValues("hit").Inc()
		return entry, nil
	}
	observability.StatsCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := s.group.Do(username, func() (any, error) {
		// a concurrent flight may have just stored a fresh entry
		if entry, ok := s.lookup(ctx, username); ok {
			return entry, nil
		}
		return s.fetch(context.WithoutCancel(ctx), username)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Refresh fetches username unconditionally and replaces its entry. Concurrent refreshes share
// one fetch, but never join a GetStats flight, which may settle on the cached entry.
func (s *Service) Refresh(ctx context.Context, username string) (*Entry, error) {
	if username == "" {
		username = s.defaultUsername
	}

	v, err, _ := s.group.Do("refresh:"+username, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), username)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

func (s *Service) Purge(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

func (s *Service) PurgeAll(ctx context.Context) error {
	return s.store.Flush(ctx)
}

func (s *Service) lookup(ctx context.Context, username string) (*Entry, bool) {
	entry, err := s.store.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn().
				Err(err).
				Str("evt.name", "leetcode.cache.get").
				Str("username", username).
				Msg("failed to read stats cache, treating as a miss")
		}
		return nil, false
	}
	if !s.now().Before(entry.FetchedAt.Add(s.ttl)) {
		return nil, false
	}
	return &entry, true
}

func (s *Service) fetch(ctx context.Context, username string) (*Entry, error) {
	raw, err := s.fetcher.FetchStats(ctx, username)
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "leetcode.fetch").
			Str("username", username).
			Msg("failed to fetch leetcode stats")
		return nil, err
	}

	entry := &Entry{
		Response: StatsResponse{
			Username: username,
			Data:     *Normalize(raw),
		},
		FetchedAt: s.now(),
	}

	// freshness is decided by FetchedAt, the store only needs to outlive the TTL
	if err := s.store.Set(ctx, username, *entry, s.ttl*2); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "leetcode.cache.set").
			Str("username", username).
			Msg("failed to store stats entry")
	}

	return entry, nil
}
