package user

import "context"

// Addresses are stored lowercase; implementations normalise their input.
type Repository interface {
	GetByAddress(ctx context.Context, address string) (*User, error)
	// AddPolicy and AddClaim create the user on first reference.
	AddPolicy(ctx context.Context, address, policyID string) error
	AddClaim(ctx context.Context, address, claimID string) error
	SetRoles(ctx context.Context, address string, roles []Role) (*User, error)
}
