package optionmock

import (
	"context"

	domain "safeguard-backend/internal/domain/option"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn    func(ctx context.Context, o *domain.InsuranceOption) error
	GetByIDFn   func(ctx context.Context, id string) (*domain.InsuranceOption, error)
	ListFn      func(ctx context.Context) ([]domain.InsuranceOption, error)
	CountFn     func(ctx context.Context) (int64, error)
	DeleteAllFn func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.InsuranceOption) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.InsuranceOption, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.InsuranceOption, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.InsuranceOption{}, nil
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
