package tokenmock

import (
	"context"

	domain "safeguard-backend/internal/domain/token"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, t *domain.Token) error
	GetByAddressFn func(ctx context.Context, address string) (*domain.Token, error)
	GetBySymbolFn  func(ctx context.Context, symbol string) (*domain.Token, error)
	ListFn         func(ctx context.Context) ([]domain.Token, error)
	CountFn        func(ctx context.Context) (int64, error)
	DeleteAllFn    func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Token) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByAddress(ctx context.Context, address string) (*domain.Token, error) {
	if m.GetByAddressFn != nil {
		return m.GetByAddressFn(ctx, address)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetBySymbol(ctx context.Context, symbol string) (*domain.Token, error) {
	if m.GetBySymbolFn != nil {
		return m.GetBySymbolFn(ctx, symbol)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Token, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.Token{}, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) DeleteAll(ctx context.Context) (int64, error) {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return 0, nil
}
