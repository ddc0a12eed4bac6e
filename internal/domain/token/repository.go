package token

import "context"

type Repository interface {
	Create(ctx context.Context, t *Token) error
	// Lookups are case-insensitive.
	GetByAddress(ctx context.Context, address string) (*Token, error)
	GetBySymbol(ctx context.Context, symbol string) (*Token, error)
	List(ctx context.Context) ([]Token, error)

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
