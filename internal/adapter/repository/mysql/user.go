package mysql

import (
	"context"
	"errors"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"safeguard-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByAddress(ctx context.Context, address string) (*user.User, error) {
	var out user.User
	err := r.db.WithContext(ctx).Where("address = ?", strings.ToLower(address)).First(&out).Error
	if err != nil {
		return nil, translate(err, user.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *UserRepository) AddPolicy(ctx context.Context, address, policyID string) error {
	_, err := r.upsert(ctx, address, func(u *user.User) {
		if !slices.Contains(u.Policies, policyID) {
			u.Policies = append(u.Policies, policyID)
		}
	})
	return err
}

func (r *UserRepository) AddClaim(ctx context.Context, address, claimID string) error {
	_, err := r.upsert(ctx, address, func(u *user.User) {
		if !slices.Contains(u.Claims, claimID) {
			u.Claims = append(u.Claims, claimID)
		}
	})
	return err
}

func (r *UserRepository) SetRoles(ctx context.Context, address string, roles []user.Role) (*user.User, error) {
	return r.upsert(ctx, address, func(u *user.User) {
		u.Roles = append([]user.Role{}, roles...)
	})
}

// upsert locks the user row (creating it when missing) and applies fn.
func (r *UserRepository) upsert(ctx context.Context, address string, fn func(u *user.User)) (*user.User, error) {
	addr := strings.ToLower(address)
	var out user.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("address = ?", addr).First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = user.User{Address: addr, Policies: []string{}, Claims: []string{}, Roles: []user.Role{}}
			fn(&out)
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		fn(&out)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
