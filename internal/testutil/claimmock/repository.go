package claimmock

import (
	"context"

	domain "safeguard-backend/internal/domain/claim"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn    func(ctx context.Context, c *domain.Claim) error
	GetByIDFn   func(ctx context.Context, id string) (*domain.Claim, error)
	ListFn      func(ctx context.Context, f domain.Filter) ([]domain.Claim, error)
	SaveFn      func(ctx context.Context, c *domain.Claim, from domain.Status) error
	CountFn     func(ctx context.Context) (int64, error)
	DeleteAllFn func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Claim) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Claim, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return []domain.Claim{}, nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Claim, from domain.Status) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c, from)
	}
	return nil
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
