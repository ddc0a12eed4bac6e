package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeguard-backend/internal/domain/claim"
)

func TestRedisPublisher_PublishClaimEvent(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, ClaimChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	at := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	ev := claim.Event{ClaimID: "CLM-001", PolicyID: "POL-001", Status: claim.StatusApproved, Actor: "0xabc", At: at}
	require.NoError(t, NewRedisPublisher(rdb).PublishClaimEvent(ctx, ev))

	select {
	case msg := <-sub.Channel():
		var got claim.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, ev.ClaimID, got.ClaimID)
		assert.Equal(t, claim.StatusApproved, got.Status)
		assert.True(t, got.At.Equal(at))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.PublishClaimEvent(context.Background(), claim.Event{}))
}
