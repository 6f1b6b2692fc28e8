package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshPrefix = "lms:refresh_token:"

type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{client: client, ttl: ttl}
}

func (c *TokenCache) SaveRefresh(ctx context.Context, userID string, refreshToken string) error {
	return c.client.Set(ctx, refreshPrefix+refreshToken, userID, c.ttl).Err()
}

// CheckRefresh returns the user the token was issued to, or redis.Nil when it
// was revoked or has expired.
func (c *TokenCache) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	return c.client.Get(ctx, refreshPrefix+refreshToken).Result()
}

func (c *TokenCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, refreshPrefix+refreshToken).Err()
}
