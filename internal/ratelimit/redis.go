package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared backend: INCR the window key, set its expiry on the
// first hit. Counts are shared across every instance pointing at the same
// server.
type Redis struct {
	client *redis.Client
	window time.Duration
	prefix string
}

func NewRedis(client *redis.Client, window time.Duration) *Redis {
	return &Redis{client: client, window: window, prefix: "ratelimit:"}
}

func (r *Redis) Incr(ctx context.Context, key string) (int, time.Duration, error) {
	k := r.prefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return 0, 0, err
		}
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = r.window
	}
	return int(count), ttl, nil
}
