package mysql

import (
	"context"

	"gorm.io/gorm"

	"safeguard-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx runs fn in a db transaction, passing repos bound to the tx.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Policies: &PolicyRepository{db: tx},
			Claims:   &ClaimRepository{db: tx},
			Users:    &UserRepository{db: tx},
		}
		return fn(ctx, r)
	})
}
