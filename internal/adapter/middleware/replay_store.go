package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// How long a reservation holds before the handler must finish.
const reservationTTL = 60 * time.Second

type replayEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// replayable reports whether the entry holds a finished response.
func (e replayEntry) replayable() bool { return !e.InProgress && e.Code != 0 && len(e.Body) > 0 }

// replayStore keeps idempotency entries in Redis.
type replayStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// reserve claims key for an in-flight request. It returns false when the key
// already exists.
func (s replayStore) reserve(ctx context.Context, key string, e replayEntry) (bool, error) {
	e.InProgress = true
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, reservationTTL).Result()
}

func (s replayStore) load(ctx context.Context, key string) (replayEntry, error) {
	var e replayEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return replayEntry{}, errors.New("corrupt idempotency entry")
	}
	return e, nil
}

// commit stores the final response for replay until ttl elapses.
func (s replayStore) commit(ctx context.Context, key string, e replayEntry) error {
	e.InProgress = false
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
