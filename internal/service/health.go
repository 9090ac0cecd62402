package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrRedisNotReachable = errors.New("redis not reachable")

type Health struct {
	Redis *redis.Client
}

// NewHealth accepts a nil client, in which case the stats cache lives in memory and there is
// nothing external to check.
func NewHealth(redis *redis.Client) *Health {
	return &Health{
		Redis: redis,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	if s.Redis == nil {
		return nil
	}

	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return errors.Wrap(ErrRedisNotReachable, err.Error())
	}

	return nil
}
