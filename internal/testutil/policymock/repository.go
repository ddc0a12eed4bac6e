package policymock

import (
	"context"
	"time"

	domain "safeguard-backend/internal/domain/policy"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return domain.ErrNotFound; unset writes are no-ops.
type Repo struct {
	CreateFn       func(ctx context.Context, p *domain.Policy) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Policy, error)
	ListFn         func(ctx context.Context, f domain.Filter) ([]domain.Policy, error)
	UpdateStatusFn func(ctx context.Context, id string, from, to domain.Status, at time.Time) error
	ExpireBeforeFn func(ctx context.Context, t time.Time) (int64, error)
	CountFn        func(ctx context.Context) (int64, error)
	DeleteAllFn    func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Policy) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Policy, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return []domain.Policy{}, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, from, to domain.Status, at time.Time) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, from, to, at)
	}
	return nil
}

func (m *Repo) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	if m.ExpireBeforeFn != nil {
		return m.ExpireBeforeFn(ctx, t)
	}
	return 0, nil
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
