package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList stores revoked token IDs in redis; entries
// expire together with the token they revoke.
func NewRedisRevocationList(client *redis.Client) RevocationList {
	return &redisRevocationList{client: client}
}

func (l *redisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return l.client.Set(ctx, revocationKey(jti), "revoked", ttl).Err()
}

func (l *redisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := l.client.Get(ctx, revocationKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func revocationKey(jti string) string { return "revoked-token:" + jti }
