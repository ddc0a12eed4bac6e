package claim

import "context"

type Repository interface {
	Create(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, id string) (*Claim, error)
	List(ctx context.Context, f Filter) ([]Claim, error)
	// Save persists status and review fields of c provided the stored status
	// is still from; otherwise it returns ErrStatusChanged.
	Save(ctx context.Context, c *Claim, from Status) error

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
