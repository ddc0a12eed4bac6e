package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"safeguard-backend/internal/domain/claim"
)

const ClaimChannel = "safeguard:claims"

// RedisPublisher fans claim events out over Redis pub/sub.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: ClaimChannel}
}

func (p *RedisPublisher) PublishClaimEvent(ctx context.Context, ev claim.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}

// Nop drops events; used when Redis is not wired (CLI).
type Nop struct{}

func (Nop) PublishClaimEvent(context.Context, claim.Event) error { return nil }
