package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/app/appconfig"
)

// Redis returns a nil client when no RedisURL is configured, in which case the stats cache
// lives in process memory.
func Redis(conf *appconfig.Config, lc fx.Lifecycle) (*redis.Client, error) {
	if conf.RedisURL == "" {
		log.Info().
			Str("evt.name", "infra.redis.disabled").
			Msg("redis is not configured, using in-memory stats cache")
		return nil, nil
	}

	u, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to parse redis url")
		return nil, err
	}

	client := redis.NewClient(u)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to ping database")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
