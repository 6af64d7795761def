package order

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore tracks submission keys in redis so a retried
// request cannot create a second order.
func NewRedisIdempotencyStore(client *redis.Client) IdempotencyStore {
	return &redisIdempotencyStore{client: client}
}

func (s *redisIdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKey(key), "claimed", ttl).Result()
}

func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKey(key)).Err()
}

func idempotencyKey(key string) string { return "order-submission:" + key }
