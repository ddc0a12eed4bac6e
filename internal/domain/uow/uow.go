package uow

import (
	"context"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/user"
)

// Repos are bound to the running transaction.
type Repos struct {
	Policies policy.Repository
	Claims   claim.Repository
	Users    user.Repository
}

type UnitOfWork interface {
	// ctx passed to fn carries the transaction (Mongo sessions ride on it).
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
