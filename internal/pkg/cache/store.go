// Package cache provides typed key-value stores with a shared interface, backed either by
// process memory or by Redis.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

// Store keeps whole values of T by key. Values are replaced on Set and never mutated in place,
// so a Get concurrent with a Set observes either the old or the new value.
type Store[T any] interface {
	// Get returns ErrNotFound when key holds no value.
	Get(ctx context.Context, key string) (T, error)

	// Set replaces the value under key. A zero expire keeps it until deleted.
	Set(ctx context.Context, key string, value T, expire time.Duration) error

	Delete(ctx context.Context, key string) error

	// Flush removes every key of this store.
	Flush(ctx context.Context) error
}
