package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store[int] = (*Redis[int])(nil)

var flushScript = redis.NewScript(`local keys = redis.call('keys', ARGV[1])
	for i=1,#keys,5000 do
		redis.call('del', unpack(keys, i, math.min(i+4999, #keys)))
	end
return #keys`)

func NewRedis[T any](client *redis.Client, prefix string) *Redis[T] {
	return &Redis[T]{
		client: client,
		prefix: prefix + ":",
	}
}

// Redis stores msgpack-encoded values under prefix:key.
type Redis[T any] struct {
	client *redis.Client
	prefix string
}

func (c *Redis[T]) key(key string) string {
	return c.prefix + key
}

func (c *Redis[T]) Get(ctx context.Context, key string) (T, error) {
	var dest T

	key = c.key(key)
	resp, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dest, ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return dest, err
	}

	if err := msgpack.Unmarshal(resp, &dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack from redis")
		return dest, err
	}
	return dest, nil
}

func (c *Redis[T]) Set(ctx context.Context, key string, value T, expire time.Duration) error {
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to redis")
	}

	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}

	if expire < 0 {
		expire = 0
	}
	if err := c.client.Set(ctx, key, b, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (c *Redis[T]) Delete(ctx context.Context, key string) error {
	key = c.key(key)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}
	return nil
}

func (c *Redis[T]) Flush(ctx context.Context) error {
	err := flushScript.Eval(ctx, c.client, []string{}, c.prefix+"*").Err()
	if err != nil {
		log.Error().Err(err).Str("prefix", c.prefix).Msg("failed to clear cache")
		return err
	}
	return nil
}
