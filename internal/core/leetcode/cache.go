package leetcode

import (
	"github.com/redis/go-redis/v9"

	"exusiai.dev/folio-stats/internal/pkg/cache"
)

const cachePrefix = "foliostats:leetcode:stats"

// NewCache keeps entries in Redis when a client is configured and in process memory otherwise.
func NewCache(client *redis.Client) cache.Store[Entry] {
	if client == nil {
		return cache.NewMemory[Entry]()
	}
	return cache.NewRedis[Entry](client, cachePrefix)
}
