package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/you/shopfront/domain"
)

// RedisVault implements domain.TokenVault using a single Redis key. The token
// carries its own expiry in its claims, so no TTL is set here; stale tokens
// are discarded by the session store on load.
type RedisVault struct {
	client *redis.Client
	key    string
}

// NewRedisVault creates a new redis-backed token vault
func NewRedisVault(client *redis.Client, key string) *RedisVault {
	return &RedisVault{client: client, key: key}
}

// Load implements domain.TokenVault
func (v *RedisVault) Load(ctx context.Context) (string, error) {
	token, err := v.client.Get(ctx, v.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrTokenNotPersisted
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// Store implements domain.TokenVault
func (v *RedisVault) Store(ctx context.Context, token string) error {
	if err := v.client.Set(ctx, v.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Clear implements domain.TokenVault
func (v *RedisVault) Clear(ctx context.Context) error {
	if err := v.client.Del(ctx, v.key).Err(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

var _ domain.TokenVault = (*RedisVault)(nil)
