package mysql

import (
	"context"

	"gorm.io/gorm"

	"safeguard-backend/internal/domain/option"
)

type OptionRepository struct{ db *gorm.DB }

func NewOptionRepository(db *gorm.DB) *OptionRepository { return &OptionRepository{db: db} }

func (r *OptionRepository) Create(ctx context.Context, o *option.InsuranceOption) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, nil, option.ErrDuplicate)
}

func (r *OptionRepository) GetByID(ctx context.Context, id string) (*option.InsuranceOption, error) {
	var out option.InsuranceOption
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, option.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *OptionRepository) List(ctx context.Context) ([]option.InsuranceOption, error) {
	out := make([]option.InsuranceOption, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *OptionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&option.InsuranceOption{}).Count(&n).Error
	return n, err
}

func (r *OptionRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := allRows(r.db.WithContext(ctx)).Delete(&option.InsuranceOption{})
	return res.RowsAffected, res.Error
}
