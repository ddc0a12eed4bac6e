package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeguard-backend/internal/domain/token"
)

func newTokenCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *TokenCache) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, NewTokenCache(rdb, ttl)
}

func TestTokenCache_SetGet_CaseInsensitive(t *testing.T) {
	_, c := newTokenCache(t, time.Minute)
	ctx := context.Background()

	tok := &token.Token{Symbol: "REAL", Name: "Real Estate Token", Address: "0x2D2acD205bd6d9D0BACCa14bfd1fAfFc1E6C144f", Decimals: 18}
	require.NoError(t, c.Set(ctx, "REAL", tok))

	got, ok, err := c.Get(ctx, "real")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tok.Address, got.Address)
	assert.Equal(t, uint8(18), got.Decimals)
}

func TestTokenCache_MissAndExpiry(t *testing.T) {
	s, c := newTokenCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "ART", &token.Token{Symbol: "ART"}))
	s.FastForward(2 * time.Minute)

	_, ok, err = c.Get(ctx, "ART")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after ttl")
}

func TestTokenCache_CorruptEntryIsMiss(t *testing.T) {
	s, c := newTokenCache(t, time.Minute)
	require.NoError(t, s.Set(tokenKey("BAD"), "{not json"))

	_, ok, err := c.Get(context.Background(), "BAD")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Exists(tokenKey("BAD")))
}

func TestTokenCache_Invalidate(t *testing.T) {
	_, c := newTokenCache(t, time.Minute)
	ctx := context.Background()
	tok := &token.Token{Symbol: "CARB", Address: "0x1D80c49BbBCd1C0911346656B7DFadfc0564c62b"}
	require.NoError(t, c.Set(ctx, tok.Symbol, tok))
	require.NoError(t, c.Set(ctx, tok.Address, tok))

	require.NoError(t, c.Invalidate(ctx, tok))

	for _, id := range []string{tok.Symbol, tok.Address} {
		_, ok, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
}
