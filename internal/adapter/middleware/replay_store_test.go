package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayStore_Lifecycle(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	ctx := context.Background()
	s := replayStore{rdb: rdb, ttl: 5 * time.Second}
	key := "idemp:sg:post:/api/policies:" + testWallet + ":req"

	e := replayEntry{BodySHA256: bodyHash([]byte(`{"a":1}`)), RequestID: "req"}
	fresh, err := s.reserve(ctx, key, e)
	require.NoError(t, err)
	assert.True(t, fresh)
	ttl := mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= reservationTTL, "reservation ttl %v", ttl)

	fresh, err = s.reserve(ctx, key, e)
	require.NoError(t, err)
	assert.False(t, fresh, "second reservation must fail")

	got, err := s.load(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.InProgress)
	assert.False(t, got.replayable())

	e.Code, e.Body = 201, []byte(`{"ok":true}`)
	require.NoError(t, s.commit(ctx, key, e))
	ttl = mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= 5*time.Second, "final ttl %v", ttl)

	got, err = s.load(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.replayable())
	assert.Equal(t, `{"ok":true}`, string(got.Body))

	require.NoError(t, s.release(ctx, key))
	assert.False(t, mr.Exists(key))
}

func TestReplayStore_CorruptEntry(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	require.NoError(t, mr.Set("k", "not json"))

	_, err := replayStore{rdb: rdb}.load(context.Background(), "k")
	assert.Error(t, err)
}
