package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"safeguard-backend/internal/domain/policy"
)

type PolicyRepository struct{ db *gorm.DB }

func NewPolicyRepository(db *gorm.DB) *PolicyRepository { return &PolicyRepository{db: db} }

func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	err := r.db.WithContext(ctx).Create(p).Error
	return translate(err, nil, policy.ErrDuplicate)
}

func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*policy.Policy, error) {
	var out policy.Policy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, policy.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *PolicyRepository) List(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	q := r.db.WithContext(ctx).Model(&policy.Policy{})
	if f.Holder != "" {
		q = q.Where("LOWER(holder) = LOWER(?)", f.Holder)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	out := make([]policy.Policy, 0)
	err := q.Order("created_at DESC, pk DESC").Find(&out).Error
	return out, err
}

func (r *PolicyRepository) UpdateStatus(ctx context.Context, id string, from, to policy.Status, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&policy.Policy{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": at.UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrChanged(r.db.WithContext(ctx), &policy.Policy{}, id, policy.ErrNotFound, policy.ErrStatusChanged)
	}
	return nil
}

func (r *PolicyRepository) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&policy.Policy{}).
		Where("status = ? AND end_date > ? AND end_date < ?", policy.StatusActive, time.Time{}, t.UTC()).
		Updates(map[string]any{"status": policy.StatusExpired, "updated_at": t.UTC()})
	return res.RowsAffected, res.Error
}

func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&policy.Policy{}).Count(&n).Error
	return n, err
}

func (r *PolicyRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := allRows(r.db.WithContext(ctx)).Delete(&policy.Policy{})
	return res.RowsAffected, res.Error
}
