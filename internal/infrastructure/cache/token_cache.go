package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"safeguard-backend/internal/domain/token"
)

const tokenKeyPrefix = "sg:token:"

// TokenCache memoises token lookups by identifier (symbol or address).
type TokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenCache(rdb *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{rdb: rdb, ttl: ttl}
}

func tokenKey(identifier string) string {
	return tokenKeyPrefix + strings.ToLower(strings.TrimSpace(identifier))
}

// Get returns (nil, false, nil) on a miss.
func (c *TokenCache) Get(ctx context.Context, identifier string) (*token.Token, bool, error) {
	b, err := c.rdb.Get(ctx, tokenKey(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var t token.Token
	if err := json.Unmarshal(b, &t); err != nil {
		// corrupt entry, treat as miss
		_ = c.rdb.Del(ctx, tokenKey(identifier)).Err()
		return nil, false, nil
	}
	return &t, true, nil
}

func (c *TokenCache) Set(ctx context.Context, identifier string, t *token.Token) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, tokenKey(identifier), b, c.ttl).Err()
}

// Invalidate drops every cached entry for the token's symbol and address.
func (c *TokenCache) Invalidate(ctx context.Context, t *token.Token) error {
	return c.rdb.Del(ctx, tokenKey(t.Symbol), tokenKey(t.Address)).Err()
}
