package option

import "context"

type Repository interface {
	Create(ctx context.Context, o *InsuranceOption) error
	GetByID(ctx context.Context, id string) (*InsuranceOption, error)
	List(ctx context.Context) ([]InsuranceOption, error)

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
