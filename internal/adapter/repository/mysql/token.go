package mysql

import (
	"context"

	"gorm.io/gorm"

	"safeguard-backend/internal/domain/token"
)

type TokenRepository struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{db: db} }

func (r *TokenRepository) Create(ctx context.Context, t *token.Token) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, nil, token.ErrDuplicate)
}

func (r *TokenRepository) GetByAddress(ctx context.Context, address string) (*token.Token, error) {
	return r.first(ctx, "LOWER(address) = LOWER(?)", address)
}

func (r *TokenRepository) GetBySymbol(ctx context.Context, symbol string) (*token.Token, error) {
	return r.first(ctx, "LOWER(symbol) = LOWER(?)", symbol)
}

func (r *TokenRepository) first(ctx context.Context, where string, arg string) (*token.Token, error) {
	var out token.Token
	if err := r.db.WithContext(ctx).Where(where, arg).First(&out).Error; err != nil {
		return nil, translate(err, token.ErrNotFound, nil)
	}
	return &out, nil
}

func (r *TokenRepository) List(ctx context.Context) ([]token.Token, error) {
	out := make([]token.Token, 0)
	err := r.db.WithContext(ctx).Order("symbol ASC").Find(&out).Error
	return out, err
}

func (r *TokenRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&token.Token{}).Count(&n).Error
	return n, err
}

func (r *TokenRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := allRows(r.db.WithContext(ctx)).Delete(&token.Token{})
	return res.RowsAffected, res.Error
}
