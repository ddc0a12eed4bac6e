package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"safeguard-backend/internal/domain/claim"
)

type ClaimRepository struct{ db *gorm.DB }

func NewClaimRepository(db *gorm.DB) *ClaimRepository { return &ClaimRepository{db: db} }

func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, nil, claim.ErrDuplicate)
}

func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	var out claim.Claim
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, claim.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *ClaimRepository) List(ctx context.Context, f claim.Filter) ([]claim.Claim, error) {
	q := r.db.WithContext(ctx).Model(&claim.Claim{})
	if f.PolicyID != "" {
		q = q.Where("policy_id = ?", f.PolicyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	out := make([]claim.Claim, 0)
	err := q.Order("created_at DESC, pk DESC").Find(&out).Error
	return out, err
}

func (r *ClaimRepository) Save(ctx context.Context, c *claim.Claim, from claim.Status) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	res := r.db.WithContext(ctx).Model(&claim.Claim{}).
		Where("id = ? AND status = ?", c.ID, from).
		Updates(map[string]any{
			"status":           c.Status,
			"processed_by":     c.ProcessedBy,
			"processed_at":     c.ProcessedAt,
			"rejection_reason": c.RejectionReason,
			"updated_at":       c.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrChanged(r.db.WithContext(ctx), &claim.Claim{}, c.ID, claim.ErrNotFound, claim.ErrStatusChanged)
	}
	return nil
}

func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&claim.Claim{}).Count(&n).Error
	return n, err
}

func (r *ClaimRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := allRows(r.db.WithContext(ctx)).Delete(&claim.Claim{})
	return res.RowsAffected, res.Error
}
