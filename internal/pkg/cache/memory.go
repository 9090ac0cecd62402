package cache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Store[int] = (*Memory[int])(nil)

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		c: cache.New(cache.NoExpiration, time.Minute*10),
	}
}

type Memory[T any] struct {
	c *cache.Cache
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, error) {
	v, ok := m.c.Get(key)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v.(T), nil
}

func (m *Memory[T]) Set(_ context.Context, key string, value T, expire time.Duration) error {
	if expire <= 0 {
		expire = cache.NoExpiration
	}
	m.c.Set(key, value, expire)
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory[T]) Flush(_ context.Context) error {
	m.c.Flush()
	return nil
}
