package leetcode

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheWithoutRedis(t *testing.T) {
	ctx := context.Background()
	store := NewCache(nil)

	entry := Entry{Response: StatsResponse{Username: "john_doe"}}
	require.NoError(t, store.Set(ctx, "john_doe", entry, 0))

	got, err := store.Get(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestRedisCacheKeepsResponseBody(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewCache(client)

	tests := []struct {
		name    string
		payload string
	}{
		{"full", fullPayload},
		{"empty", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{
				Response: StatsResponse{
					Username: "john_doe",
					Data:     *Normalize(mustRaw(t, tt.payload)),
				},
				FetchedAt: time.Date(2026, 10, 15, 8, 0, 0, 123456789, time.UTC),
			}
			want, err := json.Marshal(entry.Response)
			require.NoError(t, err)

			require.NoError(t, store.Set(ctx, "john_doe", entry, 2*time.Hour))
			assert.True(t, mr.Exists(cachePrefix+":john_doe"))

			got, err := store.Get(ctx, "john_doe")
			require.NoError(t, err)
			assert.True(t, entry.FetchedAt.Equal(got.FetchedAt), "%s != %s", entry.FetchedAt, got.FetchedAt)

			have, err := json.Marshal(got.Response)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(have))
		})
	}
}
