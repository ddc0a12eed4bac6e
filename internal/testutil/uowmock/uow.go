package uowmock

import (
	"context"
	"errors"

	"safeguard-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in WithinTxFn, or use Passthrough to run fn against fixed repos.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(ctx context.Context, r uow.Repos) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(context.Context, uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

// Passthrough runs the transaction body directly against r.
func Passthrough(r uow.Repos) *UoW {
	return New().WithWithinTx(func(ctx context.Context, fn func(context.Context, uow.Repos) error) error {
		return fn(ctx, r)
	})
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(ctx context.Context, r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
