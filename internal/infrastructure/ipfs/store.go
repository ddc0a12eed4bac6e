package ipfs

import (
	"context"
	"errors"
)

var (
	ErrInvalidCID = errors.New("invalid content identifier")
	ErrNotFound   = errors.New("content not found on IPFS")
	ErrDisabled   = errors.New("ipfs storage is disabled")
)

// Store persists JSON documents and returns their CID.
type Store interface {
	Put(ctx context.Context, name string, v any) (string, error)
	// Get decodes the JSON document at cid into out.
	Get(ctx context.Context, cid string, out any) error
}

// Disabled satisfies Store for deployments without IPFS.
type Disabled struct{}

func (Disabled) Put(context.Context, string, any) (string, error) { return "", ErrDisabled }

func (Disabled) Get(context.Context, string, any) error { return ErrDisabled }
