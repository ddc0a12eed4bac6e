package usermock

import (
	"context"

	domain "safeguard-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByAddressFn func(ctx context.Context, address string) (*domain.User, error)
	AddPolicyFn    func(ctx context.Context, address, policyID string) error
	AddClaimFn     func(ctx context.Context, address, claimID string) error
	SetRolesFn     func(ctx context.Context, address string, roles []domain.Role) (*domain.User, error)
}

func (m *Repo) GetByAddress(ctx context.Context, address string) (*domain.User, error) {
	if m.GetByAddressFn != nil {
		return m.GetByAddressFn(ctx, address)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) AddPolicy(ctx context.Context, address, policyID string) error {
	if m.AddPolicyFn != nil {
		return m.AddPolicyFn(ctx, address, policyID)
	}
	return nil
}

func (m *Repo) AddClaim(ctx context.Context, address, claimID string) error {
	if m.AddClaimFn != nil {
		return m.AddClaimFn(ctx, address, claimID)
	}
	return nil
}

func (m *Repo) SetRoles(ctx context.Context, address string, roles []domain.Role) (*domain.User, error) {
	if m.SetRolesFn != nil {
		return m.SetRolesFn(ctx, address, roles)
	}
	return &domain.User{Address: address, Roles: roles}, nil
}
