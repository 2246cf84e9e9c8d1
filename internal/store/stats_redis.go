package store

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/rategate/internal/stats"
)

// RedisStatsStore is a Redis implementation of stats.Store, keeping one hash
// per outcome with client keys as fields. Counters survive restarts and are
// shared between replicas; admission decisions never depend on them.
type RedisStatsStore struct {
	client     *redis.Client
	allowedKey string
	deniedKey  string
}

// NewRedisStatsStore creates a new Redis-backed stats store.
func NewRedisStatsStore(client *redis.Client) *RedisStatsStore {
	return &RedisStatsStore{
		client:     client,
		allowedKey: "ratelimit:stats:allowed",
		deniedKey:  "ratelimit:stats:denied",
	}
}

func (r *RedisStatsStore) Record(ctx context.Context, event stats.Event) error {
	hashKey := r.allowedKey
	if !event.Allowed {
		hashKey = r.deniedKey
	}

	return r.client.HIncrBy(ctx, hashKey, event.Key, 1).Err()
}

func (r *RedisStatsStore) Snapshot(ctx context.Context) (map[string]stats.Counters, error) {
	allowed, err := r.client.HGetAll(ctx, r.allowedKey).Result()
	if err != nil {
		return nil, err
	}

	denied, err := r.client.HGetAll(ctx, r.deniedKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]stats.Counters, len(allowed)+len(denied))

	for key, raw := range allowed {
		n, _ := strconv.ParseInt(raw, 10, 64)
		c := out[key]
		c.Allowed = n
		out[key] = c
	}

	for key, raw := range denied {
		n, _ := strconv.ParseInt(raw, 10, 64)
		c := out[key]
		c.Denied = n
		out[key] = c
	}

	return out, nil
}
