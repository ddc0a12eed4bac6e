package policy

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id string) (*Policy, error)
	List(ctx context.Context, f Filter) ([]Policy, error)
	// UpdateStatus moves the policy from one status to another. It returns
	// ErrStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error

	// ExpireBefore flips every active policy whose end date is set and before t to expired.
	ExpireBefore(ctx context.Context, t time.Time) (int64, error)

	// Maintenance
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
